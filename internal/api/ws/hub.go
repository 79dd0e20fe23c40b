package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rps-arena/internal/config"
	"rps-arena/internal/room"
	"rps-arena/internal/session"
)

// envelope is the wire frame both directions: an action name plus an
// action-specific payload.
type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Hub owns the live connections and their room broadcast groups. It assigns
// each accepted connection an opaque id, feeds inbound envelopes to the game
// handler, and treats a closed connection as an implicit leave.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client            // conn id -> client
	rooms   map[string]map[string]*client // room code -> conn id -> client

	sessions *session.Registry
	game     GameHandler
	cfg      config.Config
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

func NewHub(cfg config.Config, sessions *session.Registry, log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:  make(map[string]*client),
		rooms:    make(map[string]map[string]*client),
		sessions: sessions,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.AllowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == cfg.AllowedOrigin
			},
		},
		log: log,
	}
}

// SetGame wires the game handler after construction; the handler broadcasts
// through the hub, so neither side can be built first.
func (h *Hub) SetGame(game GameHandler) {
	h.game = game
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnf("upgrade failed: %v", err)
		return
	}

	cl := newClient(uuid.NewString(), conn, h.cfg.WSSendQueue)
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	h.log.Infow("client connected", "conn", cl.id)

	pingPeriod := h.cfg.WSPongTimeout * 9 / 10
	go cl.writePump(h.cfg.WSWriteTimeout, pingPeriod)
	h.readLoop(cl)
	h.teardown(cl)
}

func (h *Hub) readLoop(cl *client) {
	cl.conn.SetReadLimit(h.cfg.WSReadLimit)
	_ = cl.conn.SetReadDeadline(time.Now().Add(h.cfg.WSPongTimeout))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(h.cfg.WSPongTimeout))
	})
	for {
		var env envelope
		if err := cl.conn.ReadJSON(&env); err != nil {
			return
		}
		h.dispatch(cl, env)
	}
}

// teardown runs the implicit-leave path: drop the connection from its group,
// let the game remove the player and cancel any pending negotiation, then
// forget the session.
func (h *Hub) teardown(cl *client) {
	if sess, ok := h.sessions.Lookup(cl.id); ok {
		h.leaveGroup(sess.Room, cl.id)
		h.game.Disconnect(sess.Room, cl.id)
		h.sessions.Unbind(cl.id)
		h.log.Infow("client disconnected", "conn", cl.id, "room", sess.Room)
	} else {
		h.log.Infow("client disconnected", "conn", cl.id)
	}
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()
	cl.close()
}

func (h *Hub) dispatch(cl *client, env envelope) {
	switch env.Action {
	case "join-room":
		var p struct {
			RoomID string `json:"roomId"`
			Name   string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomID == "" {
			return
		}
		h.handleJoin(cl, p.RoomID, p.Name)

	case "player-move":
		var mv string
		if err := json.Unmarshal(env.Data, &mv); err != nil {
			return
		}
		sess, ok := h.sessions.Lookup(cl.id)
		if !ok {
			return
		}
		if err := h.game.SubmitMove(sess.Room, cl.id, mv); errors.Is(err, room.ErrInvalidMove) {
			h.Unicast(cl.id, "invalid-move", gin.H{"move": mv})
		}

	case "rematch":
		if sess, ok := h.sessions.Lookup(cl.id); ok {
			_ = h.game.Rematch(sess.Room, cl.id)
		}

	case "rematch-invite":
		sess, ok := h.sessions.Lookup(cl.id)
		if !ok {
			return
		}
		if err := h.game.RequestRematch(sess.Room, cl.id); errors.Is(err, room.ErrOpponentUnavailable) {
			h.Unicast(cl.id, "opponent-unavailable", nil)
		}

	case "rematch-response":
		var p struct {
			Accept bool   `json:"accept"`
			Name   string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		sess, ok := h.sessions.Lookup(cl.id)
		if !ok {
			return
		}
		if p.Name == "" {
			p.Name = sess.Name
		}
		_ = h.game.RespondRematch(sess.Room, cl.id, p.Accept, p.Name)

	case "chat-message":
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			return
		}
		if sess, ok := h.sessions.Lookup(cl.id); ok {
			h.game.Chat(sess.Room, cl.id, text)
		}

	case "request-players":
		var p struct {
			RoomID string `json:"roomId"`
		}
		_ = json.Unmarshal(env.Data, &p)
		code := p.RoomID
		if code == "" {
			if sess, ok := h.sessions.Lookup(cl.id); ok {
				code = sess.Room
			}
		}
		h.Unicast(cl.id, "update-players", gin.H{"players": h.game.Players(code)})

	default:
		h.log.Debugw("unknown action", "action", env.Action, "conn", cl.id)
	}
}

// handleJoin binds the connection to a room. The group add happens before the
// game join so the second joiner sees its own both-players-joined; a full
// room rolls the add back and only the requester hears about it.
func (h *Hub) handleJoin(cl *client, code, name string) {
	if sess, ok := h.sessions.Lookup(cl.id); ok && sess.Room != code {
		// Re-join to a different room is an implicit leave of the old one.
		h.leaveGroup(sess.Room, cl.id)
		h.game.Disconnect(sess.Room, cl.id)
		h.sessions.Unbind(cl.id)
	}

	h.joinGroup(code, cl)
	if err := h.game.Join(code, cl.id, name); err != nil {
		h.leaveGroup(code, cl.id)
		if errors.Is(err, room.ErrRoomFull) {
			h.Unicast(cl.id, "room-full", nil)
		}
		return
	}
	h.sessions.Bind(cl.id, name, code)
}

func (h *Hub) joinGroup(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[string]*client)
	}
	h.rooms[code][cl.id] = cl
}

func (h *Hub) leaveGroup(code, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.rooms[code]; ok {
		delete(group, connID)
		if len(group) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast delivers an action to every connection in the room's group.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	b, err := json.Marshal(envelopeOut{Action: action, Data: data})
	if err != nil {
		h.log.Errorf("marshal %s: %v", action, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cl := range h.rooms[roomCode] {
		if !cl.enqueue(b) {
			h.log.Warnw("send queue full, dropping", "conn", cl.id, "action", action)
		}
	}
}

// Unicast delivers an action to one connection.
func (h *Hub) Unicast(connID string, action string, data interface{}) {
	b, err := json.Marshal(envelopeOut{Action: action, Data: data})
	if err != nil {
		h.log.Errorf("marshal %s: %v", action, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[connID]; ok {
		if !cl.enqueue(b) {
			h.log.Warnw("send queue full, dropping", "conn", connID, "action", action)
		}
	}
}

type envelopeOut struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data,omitempty"`
}
