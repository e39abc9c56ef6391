package game

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"go.uber.org/zap"
)

// =============================================================================
// ROOM MANAGEMENT
// =============================================================================

type RegistryConfig struct {
	Settings Settings
	Words    WordPicker
	// Tickers drives round timers; nil means wall-clock tickers.
	Tickers TickerFactory
	Stats   Stats
	// Events is notified when rooms are created; nil means nobody listens.
	Events RoomEvents
	Logger *zap.SugaredLogger
	Clock  func() time.Time
}

// Registry is the process-wide owner of room lifetime. Lock order is session
// before registry: a session may call back into the registry while holding its
// own lock, so the registry never takes a session lock while holding mu.
type Registry struct {
	deps   sessionDeps
	events RoomEvents

	mu    sync.RWMutex
	rooms map[string]*Session
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Settings == (Settings{}) {
		cfg.Settings = DefaultSettings()
	}
	if cfg.Words == nil {
		cfg.Words, _ = NewWordBank(DefaultWords(), nil)
	}
	if cfg.Stats == nil {
		cfg.Stats = nopStats{}
	}
	if cfg.Events == nil {
		cfg.Events = nopEvents{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	r := &Registry{events: cfg.Events, rooms: make(map[string]*Session)}
	r.deps = sessionDeps{
		settings: cfg.Settings,
		words:    cfg.Words,
		tickers:  cfg.Tickers,
		stats:    cfg.Stats,
		log:      cfg.Logger,
		now:      cfg.Clock,
		onEmpty:  r.release,
	}
	return r
}

// CreateRoom registers a new room in Lobby. Names must be non-blank and must
// not contain a slash, since they are used as a URL path segment.
func (r *Registry) CreateRoom(name string) (*Session, error) {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return nil, ErrInvalidName
	}

	r.mu.Lock()
	if _, exists := r.rooms[name]; exists {
		r.mu.Unlock()
		return nil, ErrAlreadyExists
	}
	s := newSession(name, r.deps)
	r.rooms[name] = s
	n := len(r.rooms)
	r.mu.Unlock()

	r.deps.stats.RoomOpened()
	r.deps.log.Infow("room created", "room", name, "rooms", n)
	r.events.RoomCreated(s.Snapshot())
	return s, nil
}

func (r *Registry) GetRoom(name string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.rooms[name]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s, nil
}

// release is the only way a room leaves the registry. Sessions call it when
// their roster empties or an idle room expires. It only deletes the entry if
// it still points at s, so a same-named room created later is left alone.
func (r *Registry) release(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.rooms[s.name]; !ok || cur != s {
		return
	}
	delete(r.rooms, s.name)
	r.deps.stats.RoomClosed()
	r.deps.log.Infow("room destroyed", "room", s.name, "rooms", len(r.rooms))
}

func (r *Registry) sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.rooms))
	for _, s := range r.rooms {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int { return strings.Compare(a.name, b.name) })
	return out
}

// List returns a summary of every room, sorted by name.
func (r *Registry) List() []internal.RoomSummary {
	sessions := r.sessions()
	out := make([]internal.RoomSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}

// Joinable returns the first room, by name, that is in Lobby with a free slot.
func (r *Registry) Joinable() (internal.RoomSummary, bool) {
	for _, s := range r.sessions() {
		if sum := s.Snapshot(); sum.Joinable() {
			return sum, true
		}
	}
	return internal.RoomSummary{}, false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Reap destroys rooms that were created but never joined within ttl.
func (r *Registry) Reap(ttl time.Duration) int {
	n := 0
	for _, s := range r.sessions() {
		if s.expireIfIdle(ttl) {
			n++
		}
	}
	if n > 0 {
		r.deps.log.Infow("reaped idle rooms", "count", n, "ttl", ttl)
	}
	return n
}

// RunReaper calls Reap every interval until ctx is done.
func (r *Registry) RunReaper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Reap(ttl)
		}
	}
}
