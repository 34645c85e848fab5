package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/presets"
	"github.com/threecushion/backend/internal/tables"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tables.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
	case errors.Is(err, presets.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "preset not found"})
	case errors.Is(err, tables.ErrInvalidPassphrase):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid passphrase"})
	case errors.Is(err, game.ErrUnknownBall), errors.Is(err, game.ErrUnknownField), errors.Is(err, presets.ErrInvalidPresetName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
