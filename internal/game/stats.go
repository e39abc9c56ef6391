package game

import "github.com/scythe504/sketchrooms/internal"

// Round outcomes reported to Stats.
const (
	OutcomeGuess   = "guess"
	OutcomeTimeout = "timeout"
)

// Stats receives lifecycle counters from the registry and sessions.
// Calls happen under room locks and must be cheap.
type Stats interface {
	RoomOpened()
	RoomClosed()
	PlayerJoined()
	PlayerLeft()
	JoinRejected(reason string)
	RoundResolved(outcome string)
	GameFinished()
}

type nopStats struct{}

func (nopStats) RoomOpened()          {}
func (nopStats) RoomClosed()          {}
func (nopStats) PlayerJoined()        {}
func (nopStats) PlayerLeft()          {}
func (nopStats) JoinRejected(string)  {}
func (nopStats) RoundResolved(string) {}
func (nopStats) GameFinished()        {}

// RoomEvents is told about changes to the set of rooms, for clients that are
// browsing rather than sitting in a room. Calls happen outside the registry
// lock.
type RoomEvents interface {
	RoomCreated(internal.RoomSummary)
}

type nopEvents struct{}

func (nopEvents) RoomCreated(internal.RoomSummary) {}
