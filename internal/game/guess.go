package game

import (
	"github.com/scythe504/sketchrooms/internal"
)

// =============================================================================
// GUESS HANDLING
// =============================================================================

type ChatOutcome int

const (
	ChatIgnored ChatOutcome = iota
	ChatRelayed
	ChatCorrectGuess
	ChatWithheld
)

// Chat handles a chat line. During an active round a line exactly equal to the
// secret word is a correct guess from a non-artist and is withheld when the
// artist sends it. Every other line is relayed to the rest of the room.
func (s *Session) Chat(connID, text string) ChatOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || text == "" {
		return ChatIgnored
	}
	p, ok := s.roster.Get(connID)
	if !ok {
		return ChatIgnored
	}

	if s.phase == internal.PhaseActive && text == s.currentWord {
		if connID == s.artistID {
			s.log.Infow("artist sent the secret word, withheld", "conn", connID, "round", s.round)
			p.send(message(internal.EventWordWithheld, internal.ChatData{Name: p.Name, Text: text}))
			return ChatWithheld
		}
		s.log.Infow("correct guess", "player", p.Name, "round", s.round, "time_left", s.timer.TimeLeft())
		s.resolveRoundLocked(p)
		return ChatCorrectGuess
	}

	s.broadcastExcept(message(internal.EventChat, internal.ChatData{Name: p.Name, Text: text}), connID)
	return ChatRelayed
}
