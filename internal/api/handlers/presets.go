package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/models"
	"github.com/threecushion/backend/internal/presets"
	"github.com/threecushion/backend/internal/tables"
)

// PresetStore is the subset of presets.Repository the handlers use.
type PresetStore interface {
	List(ctx context.Context, tag string) ([]models.Preset, error)
	Get(ctx context.Context, name string) (*models.Preset, error)
	Save(ctx context.Context, name, description string, tags []string, layout game.Layout) error
	Delete(ctx context.Context, name string) error
}

func presetJSON(p models.Preset) gin.H {
	out := gin.H{
		"name":        p.Name,
		"description": p.Description,
		"tags":        p.Tags,
		"updated_at":  p.UpdatedAt,
	}
	if layout, err := presets.DecodeLayout(&p); err == nil {
		out["balls"] = layout
	}
	return out
}

// ListPresets returns stored presets, filtered by ?tag= when given
func ListPresets(store PresetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context(), c.Query("tag"))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(list))
		for _, p := range list {
			out = append(out, presetJSON(p))
		}
		c.JSON(http.StatusOK, gin.H{"presets": out})
	}
}

// SavePreset stores the layout of the caller's table under a name
func SavePreset(store PresetStore, manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string   `json:"name" binding:"required"`
			Description string   `json:"description"`
			Tags        []string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			respondError(c, presets.ErrInvalidPresetName)
			return
		}

		tableID := c.GetString("table_id")
		snap, err := manager.Snapshot(c.Request.Context(), tableID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := store.Save(c.Request.Context(), req.Name, req.Description, req.Tags, snap.Balls); err != nil {
			respondError(c, err)
			return
		}
		log.Printf("[PRESETS] Saved preset %q from table %s", req.Name, tableID)
		c.JSON(http.StatusCreated, gin.H{"name": req.Name, "balls": snap.Balls})
	}
}

// DeletePreset removes a preset
func DeletePreset(store PresetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("name")); err != nil {
			respondError(c, err)
			return
		}
		log.Printf("[PRESETS] Deleted preset %q", c.Param("name"))
		c.Status(http.StatusNoContent)
	}
}

// LoadPreset replaces the table layout with a stored preset
func LoadPreset(store PresetStore, manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := store.Get(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		layout, err := presets.DecodeLayout(p)
		if err != nil {
			respondError(c, err)
			return
		}
		snap, err := manager.LoadLayout(c.Request.Context(), c.Param("id"), layout)
		if err != nil {
			respondError(c, err)
			return
		}
		writeSnapshot(c, http.StatusOK, snap)
	}
}
