package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/threecushion/backend/internal/ws"
)

// HandleTableWebSocket streams live table snapshots
func HandleTableWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return hub.HandleWebSocket
}
