package ws

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/tables"
)

func generateClientID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return "c_" + hex.EncodeToString(b)
}

// HandleWebSocket streams table_state frames for the table named by :id.
// Clients passing a valid edit token in ?token= may also send edits.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	tableID := c.Param("id")

	canEdit := false
	if token := c.Query("token"); token != "" {
		id, err := h.tables.ParseToken(token)
		if err != nil || id != tableID {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid table token"})
			return
		}
		canEdit = true
	}

	snap, err := h.tables.Snapshot(c.Request.Context(), tableID)
	if err != nil {
		if errors.Is(err, tables.ErrTableNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		log.Printf("[WS] Snapshot failed for table %s: %v", tableID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		id:      generateClientID(),
		tableID: tableID,
		canEdit: canEdit,
		send:    make(chan []byte, 256),

		registered: make(chan struct{}),
	}

	h.register <- client
	<-client.registered

	// Read state again now that the client is in its room, so a change made
	// during the handshake is not lost.
	if fresh, err := h.tables.Snapshot(c.Request.Context(), tableID); err == nil {
		snap = fresh
	}
	if data, err := json.Marshal(newStateMessage(snap)); err == nil {
		select {
		case client.send <- data:
		default:
		}
	}

	go client.writePump()
	go client.readPump()
}

// Run services register and unregister requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			if _, exists := h.tableRooms[client.tableID]; !exists {
				h.tableRooms[client.tableID] = make(map[string]*Client)
			}
			h.tableRooms[client.tableID][client.id] = client
			size := len(h.tableRooms[client.tableID])
			h.mu.Unlock()
			close(client.registered)

			log.Printf("[WS] Client %s watching table %s (editor=%v, room_size=%d)", client.id, client.tableID, client.canEdit, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.id]; ok && cur == client {
				delete(h.clients, client.id)
				if room, exists := h.tableRooms[client.tableID]; exists {
					delete(room, client.id)
					if len(room) == 0 {
						delete(h.tableRooms, client.tableID)
					}
				}
				close(client.send)
				log.Printf("[WS] Client %s left table %s", client.id, client.tableID)
			}
			h.mu.Unlock()
		}
	}
}

// readPump reads edit messages from the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close for client %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage processes incoming table messages.
func (c *Client) handleMessage(msg WSMessage) {
	ctx := context.Background()

	switch msg.Type {
	case "get_state":
		snap, err := c.hub.tables.Snapshot(ctx, c.tableID)
		if err != nil {
			c.sendError("Table not found")
			return
		}
		c.hub.SendToClient(c.id, newStateMessage(snap))

	case "edit":
		if !c.canEdit {
			c.sendError("Read-only connection")
			return
		}
		var e game.Edit
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			c.sendError("Invalid edit data")
			return
		}
		ball, err := game.ParseColor(string(e.Ball))
		if err != nil {
			c.sendError(err.Error())
			return
		}
		field, err := game.ParseField(string(e.Field))
		if err != nil {
			c.sendError(err.Error())
			return
		}
		e.Ball, e.Field = ball, field
		// The resulting snapshot reaches this client through the hub.
		if _, err := c.hub.tables.Apply(ctx, c.tableID, e); err != nil {
			c.sendError(err.Error())
		}

	case "reset":
		if !c.canEdit {
			c.sendError("Read-only connection")
			return
		}
		if _, err := c.hub.tables.Reset(ctx, c.tableID); err != nil {
			c.sendError(err.Error())
		}

	default:
		c.sendError("Unknown message type")
	}
}
