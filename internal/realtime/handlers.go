package realtime

import (
	"math/rand"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Register mounts the push channels. /ws/realtime streams synthetic values on
// a per-connection timer; /ws/live replays whatever the hub broadcasts.
func Register(app *fiber.App, hub *Hub, interval time.Duration) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/realtime", SyntheticHandler(interval))
	app.Get("/ws/live", LiveHandler(hub))
}

// LiveSample is one synthetic data point for the realtime channel.
type LiveSample struct {
	Timestamp    string `json:"timestamp"`
	Temperature  int    `json:"temperature"`
	Vibration    int    `json:"vibration"`
	OilParticles int    `json:"oil_particles"`
}

// SyntheticValue generates one random sample in the dashboard's expected
// ranges.
func SyntheticValue() LiveSample {
	return LiveSample{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Temperature:  60 + rand.Intn(41),
		Vibration:    40 + rand.Intn(56),
		OilParticles: 10 + rand.Intn(71),
	}
}

// SyntheticHandler runs one independent ticker loop per connection. No state
// is shared between connections.
func SyntheticHandler(interval time.Duration) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteJSON(SyntheticValue()); err != nil {
				return
			}
		}
	})
}

// LiveHandler attaches the connection to the hub until the peer goes away.
func LiveHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{conn: conn, send: make(chan []byte, 16)}
		hub.register <- c
		go c.writePump()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.unregister <- c
	})
}
