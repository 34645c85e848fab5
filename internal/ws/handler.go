package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/threecushion/backend/internal/tables"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Client represents a connected WebSocket client
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	id      string
	tableID string
	canEdit bool
	send    chan []byte

	// closed by Run once the client is in its table room
	registered chan struct{}
}

// Hub maintains the set of active clients, grouped by table
type Hub struct {
	tables     *tables.Manager
	rdb        *redis.Client
	clients    map[string]*Client            // clientID -> Client
	tableRooms map[string]map[string]*Client // tableID -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub that pushes every change made through manager to
// the clients watching that table.
func NewHub(manager *tables.Manager) *Hub {
	h := &Hub{
		tables:     manager,
		clients:    make(map[string]*Client),
		tableRooms: make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	manager.OnChange(h.Publish)
	return h
}

// stateMessage is the table_state frame sent to clients.
type stateMessage struct {
	Type string `json:"type"`
	tables.Snapshot
}

func newStateMessage(s tables.Snapshot) stateMessage {
	return stateMessage{Type: "table_state", Snapshot: s}
}

// Publish delivers a snapshot to every watcher of its table. With Redis
// attached the snapshot goes through table_events so that every instance,
// this one included, rebroadcasts it.
func (h *Hub) Publish(s tables.Snapshot) {
	data, err := json.Marshal(newStateMessage(s))
	if err != nil {
		log.Printf("[WS] Error marshaling snapshot for table %s: %v", s.TableID, err)
		return
	}
	if h.rdb != nil {
		if err := h.publishToRedis(data); err == nil {
			return
		}
	}
	h.broadcastRaw(s.TableID, data)
}

// BroadcastToTable sends a message to every client watching a table
func (h *Hub) BroadcastToTable(tableID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	h.broadcastRaw(tableID, data)
}

func (h *Hub) broadcastRaw(tableID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, exists := h.tableRooms[tableID]; exists {
		for _, client := range room {
			select {
			case client.send <- data:
			default:
				// Client's buffer is full
				log.Printf("[WS] Send buffer full for client %s on table %s, dropping message", client.id, tableID)
			}
		}
	}
}

// SendToClient sends a message to a single connection
func (h *Hub) SendToClient(clientID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, exists := h.clients[clientID]; exists {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] SendToClient dropped message for client %s (buffer full)", clientID)
		}
	}
}

// RoomSize reports how many clients are watching a table.
func (h *Hub) RoomSize(tableID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tableRooms[tableID])
}

// Message types
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for client %s: %v", c.id, err)
				return
			}
		}
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Dropped error for client %s (buffer full)", c.id)
	}
}
