package room

// Broadcaster is the outbound side of the message channel: room-wide fanout
// plus targeted delivery to a single connection.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
	Unicast(connID string, action string, data interface{})
}
