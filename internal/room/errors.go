package room

import "errors"

var (
	// ErrRoomFull is returned when a join would exceed the 2-player capacity.
	// It concerns the requester only; room state is left untouched.
	ErrRoomFull = errors.New("room is full")

	// ErrRoomNotFound is returned for events referencing a room the sender
	// never joined or that was already torn down. Callers drop it silently;
	// there is no generic error channel on the wire.
	ErrRoomNotFound = errors.New("room not found")

	// ErrOpponentUnavailable is returned when a rematch is requested with
	// fewer than 2 current members.
	ErrOpponentUnavailable = errors.New("opponent unavailable")

	// ErrInvalidMove is returned for symbols outside the known set.
	ErrInvalidMove = errors.New("invalid move")
)
