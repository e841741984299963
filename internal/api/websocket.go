package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pot2go/internal/display"
	"github.com/markusressel/pot2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	messageTypeInit  = "frame_init"
	messageTypeFrame = "frame"

	clientSendBuffer = 16
	broadcastBuffer  = 64

	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
)

// envelope is the wire format of every websocket message
type envelope struct {
	Type string         `json:"type"`
	Ts   time.Time      `json:"ts"`
	Data *display.Frame `json:"data,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub streams frames to all connected websocket clients.
// Clients that cannot keep up are disconnected.
type Hub struct {
	clients   cmap.ConcurrentMap[string, *client]
	broadcast chan []byte
	nextId    atomic.Uint64

	latest *display.Latest
	last   *display.Frame
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub, latest is used to greet new clients and may be nil
func NewHub(latest *display.Latest) *Hub {
	return &Hub{
		clients:   cmap.New[*client](),
		broadcast: make(chan []byte, broadcastBuffer),
		latest:    latest,
	}
}

// Show queues frame for all clients if its content changed. It never blocks.
func (h *Hub) Show(frame display.Frame) {
	if h.last != nil && h.last.SameContent(frame) {
		return
	}
	h.last = &frame

	msg, err := marshalFrame(messageTypeFrame, frame)
	if err != nil {
		ui.Warning("Unable to encode frame: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		ui.Debug("Websocket broadcast queue full, dropping frame")
	}
}

// Run fans queued frames out to the clients until ctx is done
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for _, id := range h.clients.Keys() {
				h.removeClient(id, "shutdown")
			}
			return nil
		case msg := <-h.broadcast:
			var slow []string
			h.clients.IterCb(func(id string, c *client) {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, id)
				}
			})
			for _, id := range slow {
				h.removeClient(id, "slow client")
			}
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return h.clients.Count()
}

// addClient registers a new client, greeting is queued before any broadcast
func (h *Hub) addClient(conn *websocket.Conn, greeting []byte) *client {
	c := &client{
		id:   strconv.FormatUint(h.nextId.Add(1), 10),
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	if greeting != nil {
		c.send <- greeting
	}
	h.clients.Set(c.id, c)
	return c
}

func (h *Hub) removeClient(id string, reason string) {
	c, ok := h.clients.Pop(id)
	if !ok {
		return
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	// signals writePump to exit
	close(c.send)
	ui.Debug("Websocket client %s disconnected (%s), %d remaining", id, reason, h.clients.Count())
}

func (h *Hub) handleWebsocket(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		ui.Warning("Websocket upgrade failed: %v", err)
		return nil
	}

	var greeting []byte
	if h.latest != nil {
		if frame, ok := h.latest.Get(); ok {
			greeting, _ = marshalFrame(messageTypeInit, frame)
		}
	}

	c := h.addClient(conn, greeting)
	ui.Debug("Websocket client %s connected from %s", c.id, ctx.Request().RemoteAddr)

	// the request context ends with this handler, the pumps must outlive it
	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					h.removeClient(c.id, "write error")
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.removeClient(c.id, "ping error")
				return
			}
		}
	}
}

// readPump discards incoming messages, it only exists to notice disconnects
func (h *Hub) readPump(c *client) {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.removeClient(c.id, "closed")
			return
		}
	}
}

func marshalFrame(messageType string, frame display.Frame) ([]byte, error) {
	return json.Marshal(envelope{
		Type: messageType,
		Ts:   time.Now().UTC(),
		Data: &frame,
	})
}
