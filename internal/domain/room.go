package domain

import "time"

type RoomID string

// Room is the identity of one broadcast group. The shared board
// state (elements, members) lives in core, not here.
type Room struct {
	ID        RoomID
	CreatedAt time.Time
}
