package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rps-arena/internal/room"
)

// @Summary Allocate a room code
// @Description Returns a 6-digit code not currently in use. The room itself is created when the first player joins over the WebSocket.
// @Tags Room
// @Produce json
// @Success 200 {object} http.CreateRoomResponse
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, CreateRoomResponse{RoomID: rm.NewRoomCode()})
	}
}

// @Summary Inspect a room
// @Description Returns the current players and score snapshot of a live room
// @Tags Room
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} http.RoomInfoResponse
// @Failure 404 {object} map[string]interface{}
// @Router /rooms/{code} [get]
func RoomInfoHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		players, scores, ok := rm.Snapshot(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, RoomInfoResponse{RoomID: code, Players: players, Scores: scores})
	}
}

// @Summary Liveness probe
// @Tags Ops
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
