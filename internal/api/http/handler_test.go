package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "rps-arena/internal/api/http"
	"rps-arena/internal/api/ws"
	"rps-arena/internal/config"
	"rps-arena/internal/room"
	"rps-arena/internal/session"
	"rps-arena/internal/store"
)

func newRouter(t *testing.T) (*gin.Engine, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{RoomCodeLen: 6, WSSendQueue: 8}
	log := zap.NewNop().Sugar()
	hub := ws.NewHub(cfg, session.NewRegistry(), log)
	rm := room.NewManager(store.NewMemoryStore(), cfg, hub, log)
	hub.SetGame(rm)
	return httpapi.SetupRouter(rm, hub), rm
}

func TestCreateRoomAllocatesDigitCode(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-room", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.CreateRoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.RoomID, 6)
	for _, c := range resp.RoomID {
		require.True(t, c >= '0' && c <= '9')
	}
}

func TestRoomInfo(t *testing.T) {
	r, rm := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/123456", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, rm.Join("123456", "p1", "Ana"))
	require.NoError(t, rm.Join("123456", "p2", "Ben"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/123456", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpapi.RoomInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "123456", resp.RoomID)
	require.Len(t, resp.Players, 2)
	require.Len(t, resp.Scores, 2)
}

func TestHealthz(t *testing.T) {
	r, _ := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}
