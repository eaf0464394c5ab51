package core

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Sketch/internal/domain"
)

// Frame is a marshaled outbound envelope ready for the wire.
type Frame []byte

// ConnID identifies one client connection for the session's duration.
type ConnID string

// Element is one opaque whiteboard element record. The server relays
// it untouched and never looks inside.
type Element = json.RawMessage

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrBackpressure   = errors.New("backpressure")
)

// SignalConnection abstracts the messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberDTO is a read-only view for the wire (no transport fields).
type MemberDTO struct {
	Username string `json:"userName"`
}

// Board is the core-facing API of one room's shared state.
// It owns the member set and the element list but never touches
// transport resources.
type Board interface {
	Room() *domain.Room
	MemberCount() int
	MembersSnapshot() []MemberDTO
	Elements() []Element
	MemberName(id ConnID) (string, bool)

	AddMember(id ConnID, requested string) string
	RemoveMember(id ConnID) bool
	RenameMember(id ConnID, name string) error
	ReplaceElements(els []Element)
}

// RoomStore owns the full room lifecycle: creation, lookup and
// reaping of long-empty rooms.
type RoomStore interface {
	Create() Board
	Get(id domain.RoomID) (Board, bool)
	Exists(id domain.RoomID) bool
	Count() int
}
