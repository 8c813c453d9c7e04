package hud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub is a Presenter that keeps the HUD State and streams it to websocket clients.
// Updates are batched: Flush sends at most one message per call, and only when something changed.
type Hub interface {
	Presenter
	http.Handler

	// Accept upgrades the request to a websocket and serves the client until it disconnects.
	// The client immediately receives the current state.
	//
	// Parameters:
	//   - w: the response writer of the upgrade request
	//   - r: the upgrade request
	//   - onMessage: called with every inbound text message, may be nil
	//
	// Returns:
	//   - error: the upgrade error, nil after a normal disconnect
	Accept(w http.ResponseWriter, r *http.Request, onMessage func(data []byte)) error

	// Flush sends the current state and queued popups to every client if anything changed since the
	// last Flush. Clients whose send buffer is full are dropped.
	//
	// Returns:
	//   - int: the number of clients the message was queued for
	Flush() int

	// Snapshot returns the current state.
	//
	// Returns:
	//   - State: a copy of the HUD state
	Snapshot() State

	// Clients returns the number of connected clients.
	Clients() int

	// Close disconnects every client.
	Close()
}

type hubClient struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *hubClient) close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

type hub struct {
	mu *sync.Mutex

	logger       *zap.Logger
	upgrader     websocket.Upgrader
	sendBuffer   int
	writeTimeout time.Duration

	state   State
	popups  []Popup
	dirty   bool
	clients map[uuid.UUID]*hubClient
}

var _ Hub = &hub{}

// NewHub creates a hub with no clients and a hidden HUD.
//
// Parameters:
//   - options: functional options to configure the hub
//
// Returns:
//   - Hub: the newly created hub
func NewHub(options ...HubBuilderOption) Hub {
	h := &hub{
		mu:           &sync.Mutex{},
		logger:       zap.NewNop(),
		sendBuffer:   16,
		writeTimeout: 5 * time.Second,
		clients:      make(map[uuid.UUID]*hubClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *hub) SetVisible(visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Visible != visible {
		h.state.Visible = visible
		h.dirty = true
	}
}

func (h *hub) SetHeading(degrees float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Heading != degrees {
		h.state.Heading = degrees
		h.dirty = true
	}
}

func (h *hub) SetLocationText(name, body string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.LocationName != name || h.state.LocationBody != body {
		h.state.LocationName = name
		h.state.LocationBody = body
		h.dirty = true
	}
}

func (h *hub) SetHint(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Hint != text {
		h.state.Hint = text
		h.dirty = true
	}
}

func (h *hub) ShowPopup(title, body string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.popups = append(h.popups, Popup{Title: title, Body: body})
	h.dirty = true
}

func (h *hub) SetActiveLocationButton(locationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.ActiveLocation != locationID {
		h.state.ActiveLocation = locationID
		h.dirty = true
	}
}

func (h *hub) SetOverlayOpacity(alpha float32) {
	alpha = common.Clamp(alpha, 0, 1)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.OverlayOpacity != alpha {
		h.state.OverlayOpacity = alpha
		h.dirty = true
	}
}

func (h *hub) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) Flush() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.dirty {
		return 0
	}
	h.dirty = false

	data, err := json.Marshal(Message{Type: MessageTypeState, State: h.state, Popups: h.popups})
	h.popups = nil
	if err != nil {
		h.logger.Error("hud message encoding failed", zap.Error(err))
		return 0
	}

	sent := 0
	for id, c := range h.clients {
		select {
		case c.send <- data:
			sent++
		default:
			delete(h.clients, id)
			c.close()
			h.logger.Warn("hud client dropped, send buffer full", zap.String("client", id.String()))
		}
	}
	return sent
}

func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		c.close()
	}
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Accept(w, r, nil); err != nil {
		h.logger.Debug("hud websocket upgrade failed", zap.Error(err))
	}
}

func (h *hub) Accept(w http.ResponseWriter, r *http.Request, onMessage func(data []byte)) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("hud: upgrade: %w", err)
	}

	c := &hubClient{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	initial, err := json.Marshal(Message{Type: MessageTypeState, State: h.state})
	if err == nil {
		c.send <- initial
	}
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.Info("hud client connected", zap.String("client", c.id.String()))
	go h.writePump(c)
	h.readPump(c, onMessage)
	return nil
}

// readPump blocks until the connection fails or closes, then unregisters the client.
func (h *hub) readPump(c *hubClient, onMessage func(data []byte)) {
	defer h.remove(c)
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("hud client read failed", zap.String("client", c.id.String()), zap.Error(err))
			}
			return
		}
		if msgType == websocket.TextMessage && onMessage != nil {
			onMessage(data)
		}
	}
}

func (h *hub) writePump(c *hubClient) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("hud client write failed", zap.String("client", c.id.String()), zap.Error(err))
			h.remove(c)
			return
		}
	}
}

func (h *hub) remove(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		h.logger.Info("hud client disconnected", zap.String("client", c.id.String()))
	}
	c.close()
}
