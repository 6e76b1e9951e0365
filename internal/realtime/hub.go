package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ai4bmi/factory-pulse/internal/domain"
)

// Hub fans incoming readings out to every connected /ws/live client. The
// clients map is only touched from the Run loop, so registration and
// broadcast are serialized through channels.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			log.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("live client registered")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// BroadcastReading pushes one reading to all connected clients.
func (h *Hub) BroadcastReading(r domain.Reading) {
	payload, err := json.Marshal(map[string]any{"type": "data", "payload": r})
	if err != nil {
		log.Error().Err(err).Msg("marshal live reading")
		return
	}
	h.broadcast <- payload
}

func (c *client) writePump() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
