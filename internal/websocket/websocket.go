package websocket

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/scythe504/sketchrooms/internal"
	"github.com/scythe504/sketchrooms/internal/game"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 << 10
)

type Options struct {
	SendBuffer        int
	MessagesPerSecond float64
	Burst             int
	AllowedOrigins    []string
	// OnSlowClient is called when a connection is dropped for overflowing its
	// send queue. Optional.
	OnSlowClient func()
	// Lobby serves connections made without a room. Optional.
	Lobby *Lobby
}

// Handler upgrades GET /ws/{room}?name=... and attaches the connection to the
// room as a player. GET /ws with no room joins the lobby feed.
type Handler struct {
	registry *game.Registry
	opts     Options
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewHandler(registry *game.Registry, opts Options, log *zap.SugaredLogger) *Handler {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 64
	}
	if opts.MessagesPerSecond <= 0 {
		opts.MessagesPerSecond = 20
	}
	if opts.Burst < 1 {
		opts.Burst = 40
	}
	h := &Handler{registry: registry, opts: opts, log: log}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.opts.AllowedOrigins) == 0 || slices.Contains(h.opts.AllowedOrigins, "*") {
		return true
	}
	return slices.ContainsFunc(h.opts.AllowedOrigins, func(o string) bool {
		return strings.EqualFold(o, origin)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomName, ok := mux.Vars(r)["room"]
	if !ok {
		h.serveLobby(w, r)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.log.Warnw("websocket upgrade failed", "room", roomName, "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn, h.opts, h.log.With("room", roomName, "player", name))
	go c.writePump()

	session, err := h.registry.GetRoom(roomName)
	if err == nil {
		_, err = session.Join(c.id, name, c)
	}
	if err != nil {
		c.log.Infow("join rejected", "reason", game.Reason(err))
		c.Send(internal.Message[any]{
			Type: internal.EventJoinRejected,
			Data: internal.RejectionData{Reason: game.Reason(err)},
		})
		c.shutdown()
		return
	}

	c.readPump(session)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is one websocket connection. Send never blocks: a client whose queue
// is full is disconnected.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan internal.Message[any]
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	onSlow  func()
	log     *zap.SugaredLogger
}

func newClient(id string, conn *websocket.Conn, opts Options, log *zap.SugaredLogger) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan internal.Message[any], opts.SendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(opts.MessagesPerSecond), opts.Burst),
		onSlow:  opts.OnSlowClient,
		log:     log.With("conn", id),
	}
}

func (c *Client) Send(msg internal.Message[any]) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- msg:
	default:
		c.log.Warnw("send queue full, dropping client", "type", msg.Type)
		if c.onSlow != nil {
			c.onSlow()
		}
		c.shutdown()
	}
}

// shutdown asks the write pump to flush what is queued and close the socket.
func (c *Client) shutdown() {
	c.once.Do(func() { close(c.done) })
}

type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) readPump(session *game.Session) {
	defer func() {
		session.Leave(c.id)
		c.shutdown()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Infow("connection lost", "error", err)
			}
			return
		}
		if !c.limiter.Allow() {
			c.log.Debugw("rate limited, message dropped")
			continue
		}
		c.handleMessage(session, data)
	}
}

func (c *Client) handleMessage(session *game.Session, data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		c.log.Debugw("invalid message", "error", err)
		return
	}

	switch msg.Type {
	case internal.InboundStart:
		if err := session.Start(c.id); err != nil {
			c.reject(err)
		}

	case internal.InboundRematch:
		if err := session.Rematch(c.id); err != nil {
			c.reject(err)
		}

	case internal.InboundStroke:
		var stroke internal.Stroke
		if err := json.Unmarshal(msg.Data, &stroke); err != nil {
			c.log.Debugw("invalid stroke", "error", err)
			return
		}
		session.SubmitStroke(c.id, stroke)

	case internal.InboundChat:
		var text string
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			c.log.Debugw("invalid chat message", "error", err)
			return
		}
		session.Chat(c.id, text)

	default:
		c.log.Debugw("unknown message type", "type", msg.Type)
	}
}

func (c *Client) reject(err error) {
	c.Send(internal.Message[any]{
		Type: internal.EventStartRejected,
		Data: internal.RejectionData{Reason: game.Reason(err)},
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				c.shutdown()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}

		case <-c.done:
			c.flush()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) write(msg internal.Message[any]) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// flush writes whatever is still queued without waiting for more.
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
