package game

import (
	"slices"

	"github.com/scythe504/sketchrooms/internal"
)

// =============================================================================
// DRAWING SYSTEM
// =============================================================================

// StrokeLog is the append-only drawing history of a room. It is never pruned
// and is replayed in order to every player who joins.
type StrokeLog struct {
	strokes []internal.Stroke
}

func NewStrokeLog() *StrokeLog {
	return &StrokeLog{strokes: make([]internal.Stroke, 0, 256)}
}

func (l *StrokeLog) Append(s internal.Stroke) {
	l.strokes = append(l.strokes, s)
}

func (l *StrokeLog) Len() int {
	return len(l.strokes)
}

// Snapshot returns a copy in append order.
func (l *StrokeLog) Snapshot() []internal.Stroke {
	return slices.Clone(l.strokes)
}

// SubmitStroke appends and relays a stroke from the current artist during an
// active round. Anything else is dropped without an error.
func (s *Session) SubmitStroke(connID string, stroke internal.Stroke) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != internal.PhaseActive {
		s.log.Debugw("stroke dropped, no active round", "conn", connID, "phase", s.phase)
		return false
	}
	if connID != s.artistID {
		s.log.Debugw("stroke dropped, not the artist", "conn", connID)
		return false
	}
	if !stroke.Valid() {
		s.log.Debugw("stroke dropped, malformed", "conn", connID, "size", stroke.Size)
		return false
	}

	s.strokes.Append(stroke)
	s.broadcastExcept(message(internal.EventStroke, stroke), connID)
	return true
}

// Strokes returns the stroke history in append order.
func (s *Session) Strokes() []internal.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strokes.Snapshot()
}
