package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub fans exam events out to every connected client. The single-user app
// normally has one subscriber (the browser tab), but nothing breaks with
// several.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
	log     zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a connection from the broadcast set.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// broadcast writes v to every client, dropping connections that fail.
func (h *Hub) broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := WriteTyped(conn, v); err != nil {
			h.log.Debug().Err(err).Msg("Dropping dead client")
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ─── service.EventSink implementation ───────────────────────────────

// TimerTick pushes the once-per-second clock update.
func (h *Hub) TimerTick(timeLeft int) {
	h.broadcast(TickMessage{Event: EventTick, TimeLeft: timeLeft})
}

// LowTime pushes the one-shot low-time alert.
func (h *Hub) LowTime(timeLeft int) {
	h.broadcast(LowTimeMessage{Event: EventLowTime, TimeLeft: timeLeft})
}

// AutoSubmitted announces a forced submit with the final score.
func (h *Hub) AutoSubmitted(score, total int) {
	h.broadcast(AutoSubmittedMessage{Event: EventAutoSubmitted, Score: score, Total: total})
}
