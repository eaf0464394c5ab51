package orch

import (
	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
)

// ReplaceElements overwrites the room's element list wholesale.
// Last write wins; two racing updates resolve to whichever call
// entered the board lock second.
func (o *Orchestrator) ReplaceElements(roomID domain.RoomID, els []core.Element) error {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return core.ErrRoomNotFound
	}
	board.ReplaceElements(els)
	return nil
}

// CursorMeta resolves the display name to attach to a relayed cursor
// event. An unrecognized sender reports as "Guest".
func (o *Orchestrator) CursorMeta(roomID domain.RoomID, sid core.ConnID) (string, error) {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return "", core.ErrRoomNotFound
	}
	if name, ok := board.MemberName(sid); ok {
		return name, nil
	}
	return "Guest", nil
}

// Rename updates the member's display name in place.
func (o *Orchestrator) Rename(roomID domain.RoomID, sid core.ConnID, name string) error {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return core.ErrRoomNotFound
	}
	return board.RenameMember(sid, name)
}

// Members returns the room's member snapshot for outbound delivery.
func (o *Orchestrator) Members(roomID domain.RoomID) ([]core.MemberDTO, error) {
	board, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, core.ErrRoomNotFound
	}
	return board.MembersSnapshot(), nil
}
