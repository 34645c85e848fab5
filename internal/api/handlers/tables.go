package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/render"
	"github.com/threecushion/backend/internal/tables"
	"github.com/threecushion/backend/internal/views"
)

// CreateTable starts a new table session and returns its edit token
func CreateTable(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Passphrase string `json:"passphrase"`
		}
		// An empty body creates an open table.
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		s, token, err := manager.Create(c.Request.Context(), req.Passphrase)
		if err != nil {
			respondError(c, err)
			return
		}
		snap, err := manager.Snapshot(c.Request.Context(), s.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"table_id": s.ID,
			"token":    token,
			"state":    snap,
		})
	}
}

// IssueTableToken exchanges a table passphrase for an edit token
func IssueTableToken(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Passphrase string `json:"passphrase"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		token, err := manager.IssueToken(c.Request.Context(), c.Param("id"), req.Passphrase)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func writeSnapshot(c *gin.Context, status int, snap tables.Snapshot) {
	c.Header("X-Table-Version", strconv.FormatInt(snap.Version, 10))
	c.JSON(status, snap)
}

// GetTable returns the table snapshot
func GetTable(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := manager.Snapshot(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		writeSnapshot(c, http.StatusOK, snap)
	}
}

// GetTableSVG renders the table scene as SVG
func GetTableSVG(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := manager.Snapshot(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("X-Table-Version", strconv.FormatInt(snap.Version, 10))
		c.Data(http.StatusOK, "image/svg+xml", render.RenderSVG(snap.Balls, manager.Policy()))
	}
}

// GetTableView serves an HTML page that follows the table live
func GetTableView(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		snap, err := manager.Snapshot(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		base := "/api/v1/tables/" + id
		page := views.TablePage{
			Title:        "Three-cushion table " + id,
			TableID:      id,
			Version:      snap.Version,
			SVG:          render.RenderSVG(snap.Balls, manager.Policy()),
			Balls:        snap.Balls.Balls(),
			Trajectories: snap.Trajectories,
			StatePath:    base,
			SVGPath:      base + "/svg",
			WSPath:       base + "/ws",
		}

		var buf bytes.Buffer
		if err := views.Table(page).Render(c.Request.Context(), &buf); err != nil {
			c.String(http.StatusInternalServerError, "failed to render")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

// UpdateBall edits the fields present in the body, in x, y, vx, vy order.
// Velocities are clamped, never rejected.
func UpdateBall(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		color, err := game.ParseColor(c.Param("color"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var req struct {
			X  *float64 `json:"x"`
			Y  *float64 `json:"y"`
			VX *float64 `json:"vx"`
			VY *float64 `json:"vy"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		var edits []game.Edit
		for _, f := range []struct {
			field game.Field
			value *float64
		}{
			{game.FieldX, req.X},
			{game.FieldY, req.Y},
			{game.FieldVX, req.VX},
			{game.FieldVY, req.VY},
		} {
			if f.value != nil {
				edits = append(edits, game.Edit{Ball: color, Field: f.field, Value: *f.value})
			}
		}
		if len(edits) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		snap, err := manager.Apply(c.Request.Context(), c.Param("id"), edits...)
		if err != nil {
			respondError(c, err)
			return
		}
		writeSnapshot(c, http.StatusOK, snap)
	}
}

// ResetTable puts every ball back on its starting spot
func ResetTable(manager *tables.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := manager.Reset(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		writeSnapshot(c, http.StatusOK, snap)
	}
}
