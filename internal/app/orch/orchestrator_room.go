package orch

import (
	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom makes a fresh room, adds the caller as its first member
// and binds the connection. Never fails.
func (o *Orchestrator) CreateRoom(sid core.ConnID, requestedName string) (domain.RoomID, string) {
	board := o.Rooms.Create()
	resolved := board.AddMember(sid, requestedName)
	o.Registry.BindRoom(sid, board.Room().ID)
	log.Info().Str("sid", string(sid)).Str("room", string(board.Room().ID)).Msg("room created and joined")
	return board.Room().ID, resolved
}

// JoinResult is everything the late joiner needs for its initial sync.
type JoinResult struct {
	Name     string
	Elements []core.Element
	Members  []core.MemberDTO
}

// Join adds the connection to an existing room. On ErrRoomNotFound no
// state was touched.
func (o *Orchestrator) Join(sid core.ConnID, roomID domain.RoomID, requestedName string) (JoinResult, error) {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return JoinResult{}, core.ErrRoomNotFound
	}
	resolved := board.AddMember(sid, requestedName)
	o.Registry.BindRoom(sid, roomID)
	log.Info().Str("sid", string(sid)).Str("room", string(roomID)).Msg("joined room")
	return JoinResult{
		Name:     resolved,
		Elements: board.Elements(),
		Members:  board.MembersSnapshot(),
	}, nil
}

// Leave removes the member and unbinds the room association. A leave
// against an unknown room touches nothing, matching the permissive
// protocol: the caller stays silent either way.
func (o *Orchestrator) Leave(sid core.ConnID, roomID domain.RoomID) error {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return core.ErrRoomNotFound
	}
	board.RemoveMember(sid)
	o.Registry.UnbindRoom(sid, roomID)
	log.Info().Str("sid", string(sid)).Str("room", string(roomID)).Msg("left room")
	return nil
}

// Disconnect removes the connection from every room it is bound to
// and drops it from the registry. Safe to call twice; a room reaped
// between the scan and the removal is simply skipped.
func (o *Orchestrator) Disconnect(sid core.ConnID) {
	for _, roomID := range o.Registry.RoomsOf(sid) {
		if board, ok := o.Rooms.Get(roomID); ok {
			board.RemoveMember(sid)
		}
	}
	o.Registry.Unbind(sid)
	log.Info().Str("sid", string(sid)).Msg("disconnected")
}
