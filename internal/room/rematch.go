package room

// The invite/accept handshake is a two-state machine per room: Idle until a
// member invites the other, Invited until the target responds or either party
// disconnects. A decline routes back to Idle after notifying the inviter.
type rematchPhase int

const (
	rematchIdle rematchPhase = iota
	rematchInvited
)

type rematchState struct {
	phase    rematchPhase
	fromID   string
	targetID string
}

func (s rematchState) involves(connID string) bool {
	return s.phase == rematchInvited && (s.fromID == connID || s.targetID == connID)
}
