package app

import (
	"sync"

	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Conn  core.SignalConnection
	Rooms map[domain.RoomID]struct{}
}

// Registry tracks live connections and which rooms each one is bound
// to. It holds connection ids only; member records belong to the room
// store. A connection may be bound to several rooms at once, which is
// what makes disconnect cleanup a plain scan of the bound set.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.ConnID]*connEntry)}
}

// Bind registers a live connection. Rebinding an existing id replaces
// the transport and drops prior room associations.
func (r *Registry) Bind(id core.ConnID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{Conn: conn, Rooms: make(map[domain.RoomID]struct{})}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("bound connection")
}

func (r *Registry) Unbind(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("unbound connection")
}

func (r *Registry) Conn(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// BindRoom associates the connection with a room. It does not evict
// other associations; multi-room membership is allowed.
func (r *Registry) BindRoom(id core.ConnID, roomID domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	e.Rooms[roomID] = struct{}{}
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("room", string(roomID)).Msg("bound room")
	return true
}

func (r *Registry) UnbindRoom(id core.ConnID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		delete(e.Rooms, roomID)
	}
}

// RoomsOf returns a snapshot of the rooms the connection is bound to.
func (r *Registry) RoomsOf(id core.ConnID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil
	}
	out := make([]domain.RoomID, 0, len(e.Rooms))
	for roomID := range e.Rooms {
		out = append(out, roomID)
	}
	return out
}

// ConnSnap pairs a connection id with its transport for fan-out.
type ConnSnap struct {
	ID   core.ConnID
	Conn core.SignalConnection
}

// MembersOfRoom returns the live connection set bound to a room.
func (r *Registry) MembersOfRoom(roomID domain.RoomID) []ConnSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnSnap, 0, len(r.conns))
	for id, e := range r.conns {
		if _, ok := e.Rooms[roomID]; ok {
			out = append(out, ConnSnap{ID: id, Conn: e.Conn})
		}
	}
	return out
}
