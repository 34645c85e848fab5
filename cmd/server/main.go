package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/threecushion/backend/internal/api"
	"github.com/threecushion/backend/internal/api/handlers"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/database"
	"github.com/threecushion/backend/internal/migrations"
	"github.com/threecushion/backend/internal/presets"
	"github.com/threecushion/backend/internal/redis"
	"github.com/threecushion/backend/internal/tables"
	"github.com/threecushion/backend/internal/ws"
)

func main() {
	// Initialize configuration (loads .env when present)
	cfg := config.Load()
	ctx := context.Background()

	// Database is optional; presets are disabled without it
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		conn, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Database unavailable, presets disabled: %v", err)
		} else {
			db = conn
			defer db.Close()

			if cfg.MigrateOnStart {
				log.Println("↗ Running DB migrations on startup...")
				if err := migrations.RunMigrations(cfg.DatabaseURL, ""); err != nil {
					log.Fatalf("Failed to run migrations: %v", err)
				}
			}
		}
	}

	// Redis is optional; table sessions stay in memory without it
	var store tables.Store = tables.NewMemoryStore()
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		conn, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Printf("[TABLES] Redis unavailable, using in-memory sessions: %v", err)
		} else {
			rdb = conn
			defer rdb.Close()
		}
	}
	if rdb != nil {
		store = tables.NewRedisStore(rdb, time.Duration(cfg.TableExpiryMinutes)*time.Minute)
		log.Printf("[TABLES] Sessions stored in Redis (expiry %d minutes)", cfg.TableExpiryMinutes)
	}

	manager := tables.NewManager(store, cfg.Projection(), cfg.JWTSecret, time.Duration(cfg.TableTokenTTLMinutes)*time.Minute)

	// Live feed; with Redis every instance rebroadcasts every change
	hub := ws.NewHub(manager)
	go hub.Run(ctx)
	if rdb != nil {
		hub.UseRedis(rdb)
		hub.StartTableEventSubscriber(ctx)
	}

	var presetStore handlers.PresetStore
	if db != nil {
		presetStore = presets.NewRepository(db)
	}

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	api.SetupRoutes(router, cfg, manager, hub, presetStore)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting three-cushion server on port %s (policy %+v)", port, cfg.Projection())
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
