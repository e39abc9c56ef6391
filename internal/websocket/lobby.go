package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/scythe504/sketchrooms/internal"
	"go.uber.org/zap"
)

// =============================================================================
// LOBBY FEED
// =============================================================================

// Lobby fans room announcements out to clients browsing the room list. It
// implements game.RoomEvents.
type Lobby struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	log     *zap.SugaredLogger
}

func NewLobby(log *zap.SugaredLogger) *Lobby {
	return &Lobby{clients: make(map[*Client]struct{}), log: log}
}

func (l *Lobby) RoomCreated(room internal.RoomSummary) {
	l.broadcast(internal.Message[any]{Type: internal.EventRoomCreated, Data: room})
}

func (l *Lobby) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Lobby) add(c *Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clients[c] = struct{}{}
}

func (l *Lobby) remove(c *Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, c)
}

// broadcast never blocks: Client.Send drops a client whose queue is full.
func (l *Lobby) broadcast(msg internal.Message[any]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for c := range l.clients {
		c.Send(msg)
	}
}

// serveLobby handles GET /ws. The client gets the current room list, then a
// room-created message for every room created while it stays connected.
func (h *Handler) serveLobby(w http.ResponseWriter, r *http.Request) {
	if h.opts.Lobby == nil {
		http.NotFound(w, r)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "lobby", true, "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn, h.opts, h.log.With("lobby", true))
	go c.writePump()

	h.opts.Lobby.add(c)
	c.Send(internal.Message[any]{Type: internal.EventRoomList, Data: h.registry.List()})
	c.log.Debugw("lobby client connected", "watchers", h.opts.Lobby.Len())

	c.drain()
	h.opts.Lobby.remove(c)
	c.shutdown()
}

// drain reads and discards frames until the peer goes away. Lobby clients have
// nothing to say; reading keeps pongs and close frames flowing.
func (c *Client) drain() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Infow("lobby connection lost", "error", err)
			}
			return
		}
	}
}
