package internal

import "time"

const (
	DefaultMaxPlayersPerRoom = 8
	DefaultMaxRounds         = 3
	DefaultRoundDuration     = 120 * time.Second
	DefaultRevealDuration    = 0 * time.Second
	DefaultEmptyRoomTTL      = 5 * time.Minute
	MinPlayersToStart        = 2
)

type GamePhase string

const (
	PhaseLobby    GamePhase = "lobby"
	PhaseActive   GamePhase = "active"
	PhaseRoundEnd GamePhase = "round-end"
	PhaseGameOver GamePhase = "game-over"
)

type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
