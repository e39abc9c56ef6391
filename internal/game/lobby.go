package game

import (
	"strings"

	"github.com/scythe504/sketchrooms/internal"
)

// =============================================================================
// GAME FLOW - LOBBY & MEMBERSHIP
// =============================================================================

type JoinResult struct {
	IsHost bool
}

type LeaveResult struct {
	// Empty is set when the leaver was the last member and the room was destroyed.
	Empty         bool
	HostChanged   bool
	ArtistChanged bool
}

// Join admits connID under name. Rejections leave the room untouched.
func (s *Session) Join(connID, name string, out Sender) (JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return JoinResult{}, ErrRoomNotFound
	}

	p, err := s.admitLocked(connID, name, out)
	if err != nil {
		s.stats.JoinRejected(Reason(err))
		s.log.Infow("join rejected", "conn", connID, "player", name, "reason", Reason(err))
		return JoinResult{}, err
	}

	s.everJoined = true
	s.stats.PlayerJoined()

	isHost := s.hostID == ""
	if isHost {
		s.hostID = p.ID
	}

	p.send(message(internal.EventJoinedAck, internal.JoinedData{
		Room:      s.name,
		ID:        p.ID,
		Name:      p.Name,
		IsHost:    isHost,
		Phase:     s.phase,
		MaxRounds: s.settings.MaxRounds,
		Players:   s.roster.Scores(),
	}))
	p.send(message(internal.EventStrokeHistory, s.strokes.Snapshot()))

	s.broadcastExcept(message(internal.EventUserConnected, internal.UserData{Name: p.Name}), p.ID)
	if isHost {
		s.broadcast(message(internal.EventHostAssigned, s.assignment(p.ID)))
	}
	s.broadcastScoreboard()

	s.log.Infow("player joined", "conn", connID, "player", name, "players", s.roster.Len(), "host", isHost)
	return JoinResult{IsHost: isHost}, nil
}

func (s *Session) admitLocked(connID, name string, out Sender) (*Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if s.phase != internal.PhaseLobby {
		return nil, ErrGameAlreadyStarted
	}
	return s.roster.Add(connID, name, out, s.now())
}

// Start moves the lobby into the first round. Only the host may start, and only
// with at least MinPlayersToStart members.
func (s *Session) Start(connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrRoomNotFound
	}
	if _, ok := s.roster.Get(connID); !ok {
		return ErrNotMember
	}
	if s.phase != internal.PhaseLobby {
		return ErrGameAlreadyStarted
	}
	if connID != s.hostID {
		return ErrNotHost
	}
	if s.roster.Len() < internal.MinPlayersToStart {
		s.log.Infow("start rejected", "players", s.roster.Len(), "required", internal.MinPlayersToStart)
		return ErrNotEnoughPlayers
	}

	s.round = 1
	if s.artistID == "" {
		s.artistID = s.roster.IDs()[0]
	}
	s.currentWord = s.words.Pick()

	s.log.Infow("game started", "players", s.roster.Len(), "max_rounds", s.settings.MaxRounds)
	s.broadcastScoreboard()
	s.beginRoundLocked()
	return nil
}

// Leave removes connID. The last leaver destroys the room; a departing host or
// artist is replaced by rotation. The round word is kept on an artist handoff.
func (s *Session) Leave(connID string) LeaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.roster.Remove(connID)
	if !ok {
		return LeaveResult{}
	}
	s.stats.PlayerLeft()
	s.log.Infow("player left", "conn", connID, "player", p.Name, "players", s.roster.Len())

	if s.roster.Len() == 0 {
		s.hostID, s.artistID = "", ""
		s.closeLocked()
		if s.onEmpty != nil {
			s.onEmpty(s)
		}
		return LeaveResult{Empty: true}
	}

	var res LeaveResult
	s.broadcast(message(internal.EventUserDisconnected, internal.UserData{Name: p.Name}))

	if connID == s.hostID {
		s.hostID = NextHost(s.roster.IDs(), connID)
		res.HostChanged = true
		s.broadcast(message(internal.EventHostAssigned, s.assignment(s.hostID)))
	}

	if connID == s.artistID {
		s.artistID = NextArtist(s.roster.IDs(), connID)
		res.ArtistChanged = true
		s.log.Infow("artist handed off", "artist", s.artistID, "round", s.round)
		if s.phase == internal.PhaseActive || s.phase == internal.PhaseRoundEnd {
			s.broadcast(message(internal.EventArtistAssigned, s.assignment(s.artistID)))
		}
		if s.phase == internal.PhaseActive {
			s.sendTo(s.artistID, message(internal.EventWordReveal, internal.WordData{Word: s.currentWord}))
		}
	}

	s.broadcastScoreboard()
	return res
}

// Rematch returns a finished game to Lobby with scores cleared. The stroke log
// is kept, so players joining the new lobby see the whole drawing history.
func (s *Session) Rematch(connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrRoomNotFound
	}
	if _, ok := s.roster.Get(connID); !ok {
		return ErrNotMember
	}
	if connID != s.hostID {
		return ErrNotHost
	}
	if s.phase != internal.PhaseGameOver {
		return ErrGameNotOver
	}

	for _, p := range s.roster.Players() {
		p.Score = 0
	}
	s.phase = internal.PhaseLobby
	s.round = 0
	s.artistID = ""
	s.currentWord = s.words.Pick()

	s.broadcast(message(internal.EventLobbyReset, internal.RoundUpdateData{MaxRounds: s.settings.MaxRounds}))
	s.broadcastScoreboard()
	s.log.Infow("rematch, back to lobby", "players", s.roster.Len(), "strokes", s.strokes.Len())
	return nil
}
