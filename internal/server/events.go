package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jdelaney/contentpipe-go/internal/pipeline"
)

const (
	writeWait      = 10 * time.Second
	clientBuffer   = 64
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Progress events are not sensitive; the API carries no auth yet
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans pipeline progress events out to websocket subscribers. Slow
// subscribers are dropped rather than allowed to block the pipeline.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan pipeline.Event
	log     *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]chan pipeline.Event),
		log:     log,
	}
}

// Broadcast queues an event for every subscriber. Never blocks.
func (h *Hub) Broadcast(event pipeline.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, ch := range h.clients {
		select {
		case ch <- event:
		default:
			h.log.Warn("dropping slow websocket subscriber")
			delete(h.clients, conn)
			close(ch)
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) chan pipeline.Event {
	ch := make(chan pipeline.Event, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// handleEvents upgrades the connection and streams progress events as JSON.
func (s *Server) handleEvents(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	ch := s.hub.add(conn)
	s.log.Debug("websocket subscriber connected", "remote", conn.RemoteAddr())

	// Reader goroutine: discard inbound messages, detect disconnect
	go func() {
		conn.SetReadLimit(maxMessageSize)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.remove(conn)
				return
			}
		}
	}()

	for event := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			s.hub.remove(conn)
			return
		}
	}
}
