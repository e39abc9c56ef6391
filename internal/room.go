package internal

// RoomSummary is a point-in-time view of a room, safe to hand to HTTP callers.
type RoomSummary struct {
	Name       string        `json:"name"`
	Phase      GamePhase     `json:"phase"`
	Players    int           `json:"players"`
	MaxPlayers int           `json:"max_players"`
	Round      int           `json:"round"`
	MaxRounds  int           `json:"max_rounds"`
	TimeLeft   int           `json:"time_left"`
	Host       string        `json:"host,omitempty"`
	Artist     string        `json:"artist,omitempty"`
	Scoreboard []PlayerScore `json:"scoreboard"`
}

// Joinable reports whether a new player could currently be admitted.
func (r RoomSummary) Joinable() bool {
	return r.Phase == PhaseLobby && r.Players < r.MaxPlayers
}
