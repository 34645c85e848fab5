package main

import (
	"context"
	"log"

	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/database"
	"github.com/threecushion/backend/internal/migrations"
	"github.com/threecushion/backend/internal/presets"
)

func main() {
	// Initialize configuration (loads .env when present)
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.RunMigrations(cfg.DatabaseURL, ""); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := presets.NewRepository(db)
	ctx := context.Background()
	for _, d := range presets.Drills() {
		layout, err := d.Layout()
		if err != nil {
			log.Fatalf("Drill %q is invalid: %v", d.Name, err)
		}
		if err := repo.Save(ctx, d.Name, d.Description, d.Tags, layout.Clamped(cfg.MaxVelocity)); err != nil {
			log.Fatalf("Failed to save preset %q: %v", d.Name, err)
		}
		log.Printf("✓ Preset %q seeded (%v)", d.Name, d.Tags)
	}

	log.Printf("Seeded %d presets", len(presets.Drills()))
}
