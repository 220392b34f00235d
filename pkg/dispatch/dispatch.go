// Package dispatch pushes decoded packets to live subscribers over a
// websocket, for watching a decode run progress in real time instead
// of waiting for a batch job to finish.
package dispatch

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aminofox/uasklv/pkg/logger"
	"github.com/aminofox/uasklv/pkg/uasklv"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks connected subscribers and fans out decoded packets to
// all of them.
type Hub struct {
	mu           sync.RWMutex
	subscribers  map[*subscriber]struct{}
	writeTimeout time.Duration
	log          logger.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub builds an empty Hub. writeTimeout bounds a single push to a
// single subscriber; a subscriber that can't keep up is dropped.
func NewHub(writeTimeout time.Duration, log logger.Logger) *Hub {
	return &Hub{
		subscribers:  make(map[*subscriber]struct{}),
		writeTimeout: writeTimeout,
		log:          log,
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a subscriber until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", logger.Err(err))
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, 32)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	go h.writePump(sub)
	h.readPump(sub)
}

func (h *Hub) readPump(sub *subscriber) {
	defer h.remove(sub)
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	defer sub.conn.Close()
	for msg := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
}

// packetEvent is the wire shape pushed to subscribers for one decoded
// packet.
type packetEvent struct {
	Number int                    `json:"number"`
	Fields map[string]interface{} `json:"fields"`
}

// Broadcast pushes every packet in result to all connected
// subscribers. A subscriber whose send buffer is full misses that
// packet rather than stalling the broadcast for everyone else; it
// stays subscribed.
func (h *Hub) Broadcast(result *uasklv.Result) {
	for _, p := range result.Packets {
		fields := make(map[string]interface{}, len(p.Fields))
		for _, f := range p.Fields {
			fields[f.Name] = f.Value.Interface()
		}
		msg, err := json.Marshal(packetEvent{Number: p.Number, Fields: fields})
		if err != nil {
			h.log.Warn("dropping unmarshalable packet event", logger.Int("packet", p.Number), logger.Err(err))
			continue
		}

		h.mu.RLock()
		for sub := range h.subscribers {
			select {
			case sub.send <- msg:
			default:
				h.log.Warn("subscriber send buffer full, dropping", logger.Int("packet", p.Number))
			}
		}
		h.mu.RUnlock()
	}
}

// Subscribers reports the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
