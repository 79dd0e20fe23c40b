package room

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rps-arena/internal/config"
	"rps-arena/internal/game"
)

type Store interface {
	GetRoom(code string) (*Room, bool)
	GetOrCreateRoom(code string) *Room
	DeleteRoom(code string)
}

// Manager owns every mutation of room state. It emits room-scoped messages
// through the Broadcaster; requester-only failures travel back as sentinel
// errors for the transport layer to signal.
type Manager struct {
	store Store
	cfg   config.Config
	out   Broadcaster
	log   *zap.SugaredLogger
}

func NewManager(s Store, cfg config.Config, out Broadcaster, log *zap.SugaredLogger) *Manager {
	return &Manager{store: s, cfg: cfg, out: out, log: log}
}

// Join seats a connection in the room, creating it on first use. A stale
// entry under the same connection id is replaced rather than rejected. When
// membership reaches 2 the whole room is told the match can start.
func (m *Manager) Join(code, connID, name string) error {
	var r *Room
	for {
		r = m.store.GetOrCreateRoom(code)
		r.mu.Lock()
		if !r.closed {
			break
		}
		// Lost a race against last-player teardown; the stale pointer is
		// already out of the registry, so fetch a fresh room.
		r.mu.Unlock()
	}
	defer r.mu.Unlock()

	r.removePlayer(connID)
	if len(r.players) >= 2 {
		return ErrRoomFull
	}

	r.players = append(r.players, Player{ID: connID, Name: name})
	r.scores[connID] = 0
	m.log.Infow("player joined", "room", code, "conn", connID, "name", name)

	if len(r.players) == 2 {
		m.out.Broadcast(code, "both-players-joined", gin.H{
			"players": r.playerList(),
			"scores":  r.scoreEntries(),
		})
	}
	return nil
}

// Disconnect is the implicit leave: it removes the player and everything
// keyed on it, cancels an in-flight rematch negotiation, tells the remaining
// member, and garbage-collects the room once it is empty.
func (m *Manager) Disconnect(code, connID string) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.removePlayer(connID) {
		return
	}
	m.log.Infow("player left", "room", code, "conn", connID)

	if len(r.players) == 0 {
		r.closed = true
		m.store.DeleteRoom(code)
		m.log.Infow("room deleted", "room", code)
		return
	}
	m.out.Broadcast(code, "opponent-left", nil)
}

// SubmitMove records a pending move and, once both are present, resolves the
// round: one winner score increment (none on a draw), a room-wide
// round-result, and both pending slots cleared in the same critical section.
func (m *Manager) SubmitMove(code, connID, raw string) error {
	mv := game.Move(raw)
	if !mv.Valid() {
		return ErrInvalidMove
	}
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.player(connID); !ok {
		return ErrRoomNotFound
	}
	r.pending[connID] = mv

	opp, ok := r.opponent(connID)
	if !ok {
		return nil
	}
	oppMove, ok := r.pending[opp.ID]
	if !ok {
		// Resolution is reactive: wait for the second submission.
		return nil
	}

	var winner interface{}
	switch game.Resolve(mv, oppMove) {
	case game.FirstWins:
		r.scores[connID]++
		winner = connID
	case game.SecondWins:
		r.scores[opp.ID]++
		winner = opp.ID
	}

	moves := gin.H{connID: string(mv), opp.ID: string(oppMove)}
	r.clearPending()
	m.out.Broadcast(code, "round-result", gin.H{
		"moves":    moves,
		"winnerId": winner,
		"scores":   r.scoreEntries(),
	})
	m.log.Infow("round resolved", "room", code, "winner", winner)
	return nil
}

// RequestRematch starts the invite/accept handshake: the other current
// member gets the invite, the room gets a player-list refresh.
func (m *Manager) RequestRematch(code, fromID string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.player(fromID)
	if !ok {
		return ErrRoomNotFound
	}
	if len(r.players) != 2 {
		return ErrOpponentUnavailable
	}
	target, _ := r.opponent(fromID)
	r.negotiation = rematchState{phase: rematchInvited, fromID: fromID, targetID: target.ID}

	m.out.Unicast(target.ID, "rematch-invite", gin.H{
		"fromId":   from.ID,
		"fromName": from.Name,
	})
	m.out.Broadcast(code, "update-players", gin.H{"players": r.playerList()})
	return nil
}

// RespondRematch answers a pending invite. Accepting restarts the match for
// the whole room with pending moves cleared; scores persist across
// rematches. Declining notifies the inviter only. Responses without a
// matching invite are stale and ignored.
func (m *Manager) RespondRematch(code, responderID string, accept bool, responderName string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.negotiation
	if st.phase != rematchInvited || st.targetID != responderID {
		return nil
	}
	r.negotiation = rematchState{}

	if accept {
		r.clearPending()
		for id := range r.rematchVotes {
			delete(r.rematchVotes, id)
		}
		m.out.Broadcast(code, "rematch-start", nil)
		return nil
	}
	if responderName == "" {
		if p, ok := r.player(responderID); ok {
			responderName = p.Name
		}
	}
	m.out.Unicast(st.fromID, "rematch-declined", gin.H{"name": responderName})
	return nil
}

// Rematch is the legacy mutual-count protocol: each member requests, and the
// second request starts the rematch. There is no decline path.
func (m *Manager) Rematch(code, connID string) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.player(connID); !ok {
		return ErrRoomNotFound
	}
	r.rematchVotes[connID] = struct{}{}
	if len(r.rematchVotes) < 2 {
		return nil
	}
	for id := range r.rematchVotes {
		delete(r.rematchVotes, id)
	}
	r.clearPending()
	m.out.Broadcast(code, "rematch-start", nil)
	return nil
}

// Chat relays a message under the sender's display name. Messages from
// connections that are not current members are dropped silently.
func (m *Manager) Chat(code, connID, text string) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.player(connID)
	if !ok {
		return
	}
	m.out.Broadcast(code, "chat-message", gin.H{"sender": p.Name, "text": text})
}

// Players returns the live member list, or nil for an unknown room.
func (m *Manager) Players(code string) []Player {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerList()
}

// Snapshot returns the member list and score entries for inspection.
func (m *Manager) Snapshot(code string) ([]Player, [][2]interface{}, bool) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerList(), r.scoreEntries(), true
}

// NewRoomCode allocates a code not currently in use. The room itself is
// created lazily on first join, so an empty room never sits in the registry.
func (m *Manager) NewRoomCode() string {
	for {
		code := randCode(m.cfg.RoomCodeLen)
		if _, ok := m.store.GetRoom(code); !ok {
			return code
		}
	}
}
