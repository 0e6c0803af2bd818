// internal/spectator/hub.go
package spectator

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
)

const (
	sendBuffer      = 256
	broadcastBuffer = 1024
	writeWait       = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub streams match frames to any number of read-only websocket clients.
// Publishing never blocks the simulation: frames are dropped when the hub
// falls behind, and a client that cannot keep up is disconnected.
type Hub struct {
	ecs        *entity.ECS
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]struct{}
	done       chan struct{}
	count      atomic.Int32
	dropped    atomic.Int64
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBuffer),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Watch switches the hub to a match and forwards its events. Call it from
// the goroutine that runs the match.
func (h *Hub) Watch(ecs *entity.ECS, d *event.Dispatcher) {
	h.ecs = ecs
	d.SubscribeAll(h)
}

func (h *Hub) OnEvent(e event.Event) {
	if e.Type == event.DamageDealt || h.ecs == nil {
		return
	}
	h.Publish(EventFrame(h.ecs.GameTime, e))
}

// PublishSnapshot sends the current state of the watched lane.
func (h *Hub) PublishSnapshot() {
	if h.ecs == nil {
		return
	}
	h.Publish(Snapshot(h.ecs))
}

func (h *Hub) Publish(f Frame) {
	if h.count.Load() == 0 {
		return
	}
	data, err := Encode(f)
	if err != nil {
		h.logger.Warn("failed to encode frame", zap.String("kind", f.Kind), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// Clients is the number of connected spectators.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Dropped is the number of frames discarded because the hub was behind.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Run serves the hub until ctx is done, then disconnects everybody.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			h.logger.Info("spectator joined", zap.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("spectator too slow, disconnecting")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
}

// Handler upgrades requests to spectator connections.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		select {
		case h.register <- c:
		case <-h.done:
			conn.Close()
			return
		case <-r.Context().Done():
			conn.Close()
			return
		}
		go h.writePump(c)
		go h.readPump(c)
	}
}

// readPump discards input and notices when the client goes away.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
