package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/api/handlers"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/middleware"
	"github.com/threecushion/backend/internal/tables"
	"github.com/threecushion/backend/internal/ws"
)

// SetupRoutes configures all API routes. Preset routes are mounted only
// when presetStore is non-nil.
func SetupRoutes(router *gin.Engine, cfg *config.Config, manager *tables.Manager, hub *ws.Hub, presetStore handlers.PresetStore) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	auth := middleware.TableAuthMiddleware(manager)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/config", handlers.GetConfig(cfg))
		v1.POST("/project", handlers.ProjectBall(cfg))

		// Table endpoints
		table := v1.Group("/tables")
		{
			table.POST("", handlers.CreateTable(manager))
			table.POST("/:id/token", handlers.IssueTableToken(manager))
			table.GET("/:id", handlers.GetTable(manager))
			table.GET("/:id/svg", handlers.GetTableSVG(manager))
			table.GET("/:id/view", handlers.GetTableView(manager))
			table.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleTableWebSocket(hub))
			table.PATCH("/:id/balls/:color", auth, handlers.UpdateBall(manager))
			table.POST("/:id/reset", auth, handlers.ResetTable(manager))
			if presetStore != nil {
				table.POST("/:id/presets/:name", auth, handlers.LoadPreset(presetStore, manager))
			}
		}

		if presetStore != nil {
			preset := v1.Group("/presets")
			{
				preset.GET("", handlers.ListPresets(presetStore))
				preset.POST("", auth, handlers.SavePreset(presetStore, manager))
				preset.DELETE("/:name", auth, handlers.DeletePreset(presetStore))
			}
		} else {
			log.Println("[PRESETS] No database configured; preset routes disabled")
		}
	}
}
