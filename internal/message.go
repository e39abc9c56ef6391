package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound message types
const (
	InboundStart   = "start"
	InboundRematch = "rematch"
	InboundStroke  = "stroke"
	InboundChat    = "chat-message"
)

// Outbound message types
const (
	EventJoinedAck        = "joined-ack"
	EventJoinRejected     = "join-rejected"
	EventStartRejected    = "start-rejected"
	EventUserConnected    = "user-connected"
	EventUserDisconnected = "user-disconnected"
	EventHostAssigned     = "host-assigned"
	EventArtistAssigned   = "artist-assigned"
	EventWordReveal       = "word-reveal"
	EventWordWithheld     = "word-withheld"
	EventWordHint         = "word-hint"
	EventRoundUpdate      = "round-update"
	EventTimerTick        = "timer-tick"
	EventRoundResolved    = "round-resolved"
	EventNoGuess          = "no-guess"
	EventScoreboard       = "scoreboard-update"
	EventGameOver         = "game-over"
	EventLobbyReset       = "lobby-reset"
	EventStroke           = "stroke-broadcast"
	EventStrokeHistory    = "stroke-history"
	EventChat             = "chat-message"

	// Sent on the lobby feed, outside any room
	EventRoomList    = "room-list"
	EventRoomCreated = "room-created"
)

type JoinedData struct {
	Room      string        `json:"room"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	IsHost    bool          `json:"is_host"`
	Phase     GamePhase     `json:"phase"`
	MaxRounds int           `json:"max_rounds"`
	Players   []PlayerScore `json:"players"`
}

type RejectionData struct {
	Reason string `json:"reason"`
}

type UserData struct {
	Name string `json:"name"`
}

type AssignmentData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WordData struct {
	Word string `json:"word"`
}

type RoundUpdateData struct {
	Round     int `json:"round"`
	MaxRounds int `json:"max_rounds"`
}

type TimerTickData struct {
	Seconds int       `json:"seconds"`
	Phase   GamePhase `json:"phase"`
}

type RoundResolvedData struct {
	Guesser string `json:"guesser,omitempty"`
	Word    string `json:"word"`
	Points  int    `json:"points"`
}

type GameOverData struct {
	Winners    []PlayerScore `json:"winners"`
	Scoreboard []PlayerScore `json:"scoreboard"`
}

type ChatData struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
