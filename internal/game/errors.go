package game

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrAlreadyExists      = errors.New("room already exists")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrNameTaken          = errors.New("name already taken in this room")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyMember      = errors.New("connection already joined this room")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrNotHost            = errors.New("only the host can start the game")
	ErrNotMember          = errors.New("connection is not a member of this room")
	ErrGameNotOver        = errors.New("game is not over")
	ErrEmptyWordBank      = errors.New("word bank is empty")
)

var reasons = map[error]string{
	ErrRoomNotFound:       "room-not-found",
	ErrAlreadyExists:      "already-exists",
	ErrInvalidName:        "invalid-name",
	ErrNameTaken:          "name-taken",
	ErrRoomFull:           "room-full",
	ErrAlreadyMember:      "already-joined",
	ErrGameAlreadyStarted: "already-started",
	ErrNotEnoughPlayers:   "not-enough-players",
	ErrNotHost:            "not-host",
	ErrNotMember:          "not-member",
	ErrGameNotOver:        "game-not-over",
}

// Reason maps a rejection error to the reason string sent to clients.
func Reason(err error) string {
	for target, reason := range reasons {
		if errors.Is(err, target) {
			return reason
		}
	}
	return "internal-error"
}
