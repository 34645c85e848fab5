package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/models"
)

var (
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("preset name is required")
)

// Repository stores named layouts in the presets table.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List returns all presets ordered by name, optionally filtered by tag.
func (r *Repository) List(ctx context.Context, tag string) ([]models.Preset, error) {
	var presets []models.Preset
	tag = strings.TrimSpace(tag)
	if tag == "" {
		err := r.db.SelectContext(ctx, &presets, `
			SELECT id, name, description, tags, balls, created_at, updated_at
			FROM presets
			ORDER BY name
		`)
		return presets, err
	}
	err := r.db.SelectContext(ctx, &presets, `
		SELECT id, name, description, tags, balls, created_at, updated_at
		FROM presets
		WHERE $1 = ANY(tags)
		ORDER BY name
	`, tag)
	return presets, err
}

// Get returns a single preset by name.
func (r *Repository) Get(ctx context.Context, name string) (*models.Preset, error) {
	var p models.Preset
	err := r.db.GetContext(ctx, &p, `SELECT id, name, description, tags, balls, created_at, updated_at FROM presets WHERE name=$1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save inserts a preset or replaces the one with the same name.
func (r *Repository) Save(ctx context.Context, name, description string, tags []string, layout game.Layout) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidPresetName
	}
	balls, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO presets (name, description, tags, balls, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			balls = EXCLUDED.balls,
			updated_at = NOW()
	`, name, description, pq.Array(tags), string(balls))
	return err
}

// Delete removes a preset by name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// DecodeLayout turns a stored preset back into a layout.
func DecodeLayout(p *models.Preset) (game.Layout, error) {
	var layout game.Layout
	if err := json.Unmarshal(p.Balls, &layout); err != nil {
		return game.Layout{}, fmt.Errorf("preset %q has invalid balls: %w", p.Name, err)
	}
	return layout, nil
}
