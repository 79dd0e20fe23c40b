package ws

import "rps-arena/internal/room"

// GameHandler is what the hub needs from the game side. Implemented by
// room.Manager.
type GameHandler interface {
	Join(code, connID, name string) error
	Disconnect(code, connID string)
	SubmitMove(code, connID, move string) error
	Rematch(code, connID string) error
	RequestRematch(code, connID string) error
	RespondRematch(code, connID string, accept bool, responderName string) error
	Chat(code, connID, text string)
	Players(code string) []room.Player
}
