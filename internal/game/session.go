package game

import (
	"sync"
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"go.uber.org/zap"
)

// Settings are the per-room game constants.
type Settings struct {
	MaxPlayers     int
	MaxRounds      int
	RoundDuration  time.Duration
	RevealDuration time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:     internal.DefaultMaxPlayersPerRoom,
		MaxRounds:      internal.DefaultMaxRounds,
		RoundDuration:  internal.DefaultRoundDuration,
		RevealDuration: internal.DefaultRevealDuration,
	}
}

// Session is one room's state machine. Every exported method takes mu for its
// whole duration, so handlers for the same room run one at a time and all
// notifications for a transition are queued before the handler returns.
type Session struct {
	name     string
	settings Settings
	words    WordPicker
	stats    Stats
	log      *zap.SugaredLogger
	now      func() time.Time
	onEmpty  func(*Session)

	mu          sync.Mutex
	phase       internal.GamePhase
	hostID      string
	artistID    string
	currentWord string
	round       int
	roster      *Roster
	strokes     *StrokeLog
	timer       *RoundTimer
	createdAt   time.Time
	everJoined  bool
	closed      bool
}

type sessionDeps struct {
	settings Settings
	words    WordPicker
	tickers  TickerFactory
	stats    Stats
	log      *zap.SugaredLogger
	now      func() time.Time
	onEmpty  func(*Session)
}

func newSession(name string, deps sessionDeps) *Session {
	s := &Session{
		name:     name,
		settings: deps.settings,
		words:    deps.words,
		stats:    deps.stats,
		log:      deps.log.With("room", name),
		now:      deps.now,
		onEmpty:  deps.onEmpty,

		phase:     internal.PhaseLobby,
		roster:    NewRoster(deps.settings.MaxPlayers),
		strokes:   NewStrokeLog(),
		createdAt: deps.now(),
	}
	s.currentWord = s.words.Pick()
	s.timer = NewRoundTimer(deps.tickers, s.onTimerFire)
	return s
}

func (s *Session) Name() string {
	return s.name
}

// Snapshot returns the observable room state.
func (s *Session) Snapshot() internal.RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() internal.RoomSummary {
	sum := internal.RoomSummary{
		Name:       s.name,
		Phase:      s.phase,
		Players:    s.roster.Len(),
		MaxPlayers: s.roster.Capacity(),
		Round:      s.round,
		MaxRounds:  s.settings.MaxRounds,
		TimeLeft:   s.timer.TimeLeft(),
		Scoreboard: s.roster.Scores(),
	}
	if p, ok := s.roster.Get(s.hostID); ok {
		sum.Host = p.Name
	}
	if p, ok := s.roster.Get(s.artistID); ok {
		sum.Artist = p.Name
	}
	return sum
}

// closeLocked marks the session destroyed and stops its timer. Caller holds mu.
func (s *Session) closeLocked() {
	if s.closed {
		return
	}
	s.timer.Cancel()
	s.closed = true
	s.log.Infow("room closed", "players", s.roster.Len())
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// expireIfIdle destroys a room nobody ever joined once it is older than ttl.
func (s *Session) expireIfIdle(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.everJoined || s.roster.Len() > 0 {
		return false
	}
	if s.now().Sub(s.createdAt) < ttl {
		return false
	}
	s.closeLocked()
	if s.onEmpty != nil {
		s.onEmpty(s)
	}
	return true
}

// =============================================================================
// BROADCASTING & MESSAGING
// =============================================================================

func message[T any](typ string, data T) internal.Message[any] {
	return internal.Message[any]{Type: typ, Data: data}
}

func (s *Session) broadcast(msg internal.Message[any]) {
	for _, p := range s.roster.order {
		p.send(msg)
	}
}

func (s *Session) broadcastExcept(msg internal.Message[any], excludeID string) {
	for _, p := range s.roster.order {
		if p.ID != excludeID {
			p.send(msg)
		}
	}
}

func (s *Session) sendTo(id string, msg internal.Message[any]) {
	if p, ok := s.roster.Get(id); ok {
		p.send(msg)
	}
}

func (s *Session) broadcastScoreboard() {
	s.broadcast(message(internal.EventScoreboard, s.roster.Scores()))
}

func (s *Session) assignment(id string) internal.AssignmentData {
	data := internal.AssignmentData{ID: id}
	if p, ok := s.roster.Get(id); ok {
		data.Name = p.Name
	}
	return data
}
