package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const tableEventsChannel = "table_events"

// UseRedis routes published snapshots through Redis so that every server
// instance sharing the store sees every change.
func (h *Hub) UseRedis(rdb *redis.Client) {
	h.rdb = rdb
}

func (h *Hub) publishToRedis(data []byte) error {
	if err := h.rdb.Publish(context.Background(), tableEventsChannel, data).Err(); err != nil {
		log.Printf("[WS] Publish to %s failed, broadcasting locally: %v", tableEventsChannel, err)
		return err
	}
	return nil
}

// StartTableEventSubscriber subscribes to table_events and rebroadcasts each
// snapshot to the local room for its table.
func (h *Hub) StartTableEventSubscriber(ctx context.Context) {
	if h.rdb == nil {
		log.Println("[WS] Redis client not set; table event subscriber not started")
		return
	}

	pubsub := h.rdb.Subscribe(ctx, tableEventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", tableEventsChannel)
		for msg := range ch {
			var payload struct {
				Type    string `json:"type"`
				TableID string `json:"table_id"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Printf("[WS] invalid event payload: %v", err)
				continue
			}

			switch payload.Type {
			case "table_state":
				if h.RoomSize(payload.TableID) == 0 {
					continue
				}
				h.broadcastRaw(payload.TableID, []byte(msg.Payload))
			default:
				log.Printf("[WS] unknown event type: %s", payload.Type)
			}
		}
	}()
}
