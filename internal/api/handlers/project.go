package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/config"
	"github.com/threecushion/backend/internal/game"
)

const maxRequestBounces = 100

// ProjectBall projects a single ball without touching any table. The
// velocity is clamped the same way table edits are.
func ProjectBall(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Color      string   `json:"color"`
			X          float64  `json:"x"`
			Y          float64  `json:"y"`
			VX         float64  `json:"vx"`
			VY         float64  `json:"vy"`
			SpeedScale *float64 `json:"speed_scale"`
			MaxBounces *int     `json:"max_bounces"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		color := game.White
		if req.Color != "" {
			parsed, err := game.ParseColor(req.Color)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			color = parsed
		}

		policy := cfg.Projection()
		if req.SpeedScale != nil {
			if *req.SpeedScale < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "speed_scale must not be negative"})
				return
			}
			policy.SpeedScale = *req.SpeedScale
		}
		if req.MaxBounces != nil {
			if *req.MaxBounces < 0 || *req.MaxBounces > maxRequestBounces {
				c.JSON(http.StatusBadRequest, gin.H{"error": "max_bounces must be between 0 and 100"})
				return
			}
			policy.MaxBounces = *req.MaxBounces
		}

		ball := game.Ball{
			Color: color,
			X:     req.X,
			Y:     req.Y,
			VX:    game.ClampVelocity(req.VX, policy.MaxVelocity),
			VY:    game.ClampVelocity(req.VY, policy.MaxVelocity),
		}
		c.JSON(http.StatusOK, gin.H{
			"ball":       ball,
			"policy":     policy,
			"trajectory": policy.Project(ball),
		})
	}
}
