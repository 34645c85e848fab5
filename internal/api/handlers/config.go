package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/game"
)

// GetConfig returns the projection policy and table dimensions the
// frontend needs to draw a scene itself.
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"policy": cfg.Projection(),
			"table": gin.H{
				"width":         game.TableWidth,
				"height":        game.TableHeight,
				"border_width":  game.BorderWidth,
				"cushion_width": game.CushionWidth,
				"ball_diameter": game.BallDiameter,
				"canvas_width":  game.CanvasWidth,
				"canvas_height": game.CanvasHeight,
			},
			"balls":  game.Colors,
			"fields": game.Fields,
		})
	}
}
