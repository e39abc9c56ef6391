package game

import (
	"time"

	"github.com/scythe504/sketchrooms/internal"
	"github.com/scythe504/sketchrooms/internal/utils"
)

// =============================================================================
// GAME FLOW - ROUND MANAGEMENT
// =============================================================================

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

// beginRoundLocked enters Active for the current round and artist. The artist
// learns the word privately; guessers get its masked shape.
func (s *Session) beginRoundLocked() {
	s.phase = internal.PhaseActive

	s.broadcast(message(internal.EventRoundUpdate, internal.RoundUpdateData{
		Round:     s.round,
		MaxRounds: s.settings.MaxRounds,
	}))
	s.broadcast(message(internal.EventArtistAssigned, s.assignment(s.artistID)))
	s.sendTo(s.artistID, message(internal.EventWordReveal, internal.WordData{Word: s.currentWord}))
	s.broadcastExcept(message(internal.EventWordHint, internal.WordData{Word: utils.GetMaskedWord(s.currentWord)}), s.artistID)

	s.timer.Start(seconds(s.settings.RoundDuration))
	s.log.Infow("round started", "round", s.round, "artist", s.artistID, "seconds", s.timer.TimeLeft())
}

// resolveRoundLocked ends the active round. guesser is nil on timeout. The
// timer is cancelled before anything else so a tick already in flight for this
// round is rejected as stale.
func (s *Session) resolveRoundLocked(guesser *Player) {
	points := 0
	if guesser != nil {
		points = s.timer.TimeLeft()
	}
	s.timer.Cancel()

	word := s.currentWord
	if guesser != nil {
		guesser.Score += points
		s.broadcast(message(internal.EventRoundResolved, internal.RoundResolvedData{
			Guesser: guesser.Name,
			Word:    word,
			Points:  points,
		}))
		s.stats.RoundResolved(OutcomeGuess)
	} else {
		s.broadcast(message(internal.EventNoGuess, internal.WordData{Word: word}))
		s.stats.RoundResolved(OutcomeTimeout)
	}
	s.broadcastScoreboard()

	s.round++
	s.artistID = NextArtist(s.roster.IDs(), s.artistID)
	s.currentWord = s.words.Pick()

	if s.round > s.settings.MaxRounds {
		s.finishGameLocked()
		return
	}

	s.phase = internal.PhaseRoundEnd
	if reveal := seconds(s.settings.RevealDuration); reveal > 0 {
		s.timer.Start(reveal)
		s.log.Infow("round resolved, revealing", "round", s.round-1, "word", word, "points", points, "seconds", reveal)
		return
	}
	s.log.Infow("round resolved", "round", s.round-1, "word", word, "points", points)
	s.beginRoundLocked()
}

func (s *Session) finishGameLocked() {
	s.phase = internal.PhaseGameOver
	s.timer.Cancel()

	scoreboard := s.roster.Scores()
	winners := Winners(scoreboard)
	s.broadcast(message(internal.EventGameOver, internal.GameOverData{
		Winners:    winners,
		Scoreboard: scoreboard,
	}))
	s.stats.GameFinished()
	s.log.Infow("game over", "rounds", s.settings.MaxRounds, "winners", len(winners))
}

// onTimerFire runs on the timer goroutine. Ticks for a cancelled or replaced
// run are dropped by Tick.
func (s *Session) onTimerFire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	remaining, expired, ok := s.timer.Tick(gen)
	if !ok {
		return
	}
	s.broadcast(message(internal.EventTimerTick, internal.TimerTickData{
		Seconds: remaining,
		Phase:   s.phase,
	}))
	if !expired {
		return
	}

	switch s.phase {
	case internal.PhaseActive:
		s.log.Infow("round timed out", "round", s.round)
		s.resolveRoundLocked(nil)
	case internal.PhaseRoundEnd:
		s.beginRoundLocked()
	}
}
