package room

import (
	"math/rand"
	"sync"
	"time"

	"rps-arena/internal/game"
)

// Player is one seated participant: connection id plus the display name set
// at join time.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room is one match session, keyed by a caller-supplied code. All fields are
// guarded by mu; every inbound event touching the room runs as a single
// read-modify-broadcast critical section, so no two events interleave on the
// same room.
type Room struct {
	Code string

	mu     sync.Mutex
	closed bool

	players []Player // join order, at most 2
	scores  map[string]int
	pending map[string]game.Move

	negotiation  rematchState        // invite/accept protocol
	rematchVotes map[string]struct{} // legacy mutual-count protocol

	createdAt time.Time
}

func NewRoom(code string) *Room {
	return &Room{
		Code:         code,
		scores:       map[string]int{},
		pending:      map[string]game.Move{},
		rematchVotes: map[string]struct{}{},
		createdAt:    time.Now(),
	}
}

// player returns the member with the given connection id. Lock must be held.
func (r *Room) player(connID string) (Player, bool) {
	for _, p := range r.players {
		if p.ID == connID {
			return p, true
		}
	}
	return Player{}, false
}

// opponent returns the other current member, if any. Lock must be held.
func (r *Room) opponent(connID string) (Player, bool) {
	for _, p := range r.players {
		if p.ID != connID {
			return p, true
		}
	}
	return Player{}, false
}

// removePlayer drops the member and all of its per-room state: score entry,
// pending move, rematch vote, and any negotiation it participates in.
// Lock must be held.
func (r *Room) removePlayer(connID string) bool {
	found := false
	for i, p := range r.players {
		if p.ID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			found = true
			break
		}
	}
	delete(r.scores, connID)
	delete(r.pending, connID)
	delete(r.rematchVotes, connID)
	if r.negotiation.involves(connID) {
		r.negotiation = rematchState{}
	}
	return found
}

// playerList returns a copy safe to hand out after the lock is released.
func (r *Room) playerList() []Player {
	return append([]Player(nil), r.players...)
}

// scoreEntries snapshots scores as [id, score] pairs in join order, matching
// the wire shape clients expect.
func (r *Room) scoreEntries() [][2]interface{} {
	out := make([][2]interface{}, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, [2]interface{}{p.ID, r.scores[p.ID]})
	}
	return out
}

func (r *Room) clearPending() {
	for id := range r.pending {
		delete(r.pending, id)
	}
}

const digits = "0123456789"

// randCode produces an n-digit room code. Uniqueness is a producer
// convention, not a format the registry enforces on join.
func randCode(n int) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rng.Intn(len(digits))]
	}
	return string(b)
}
