package http

import "rps-arena/internal/room"

// CreateRoomResponse carries the allocated room code.
type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// RoomInfoResponse is a read-only snapshot of a live room.
type RoomInfoResponse struct {
	RoomID  string           `json:"roomId"`
	Players []room.Player    `json:"players"`
	Scores  [][2]interface{} `json:"scores"`
}
