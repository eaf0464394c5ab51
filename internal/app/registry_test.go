package app_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Sketch/internal/app"
	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
)

type mockConn struct {
	mu      sync.Mutex
	frames  []core.Frame
	sendErr error
}

func (m *mockConn) TrySend(f core.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.frames = append(m.frames, f)
	return nil
}

func (m *mockConn) Close() {}

func (m *mockConn) sent() []core.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Frame(nil), m.frames...)
}

func TestRegistry_BindUnbind(t *testing.T) {
	r := app.NewRegistry()
	conn := &mockConn{}

	r.Bind("conn-1", conn)
	got, ok := r.Conn("conn-1")
	require.True(t, ok)
	assert.Same(t, conn, got)

	r.Unbind("conn-1")
	_, ok = r.Conn("conn-1")
	assert.False(t, ok)
}

func TestRegistry_BindRoom_UnknownConnection(t *testing.T) {
	r := app.NewRegistry()
	assert.False(t, r.BindRoom("ghost", "room-1"))
	assert.Empty(t, r.MembersOfRoom("room-1"))
}

func TestRegistry_MultiRoomMembership(t *testing.T) {
	r := app.NewRegistry()
	r.Bind("conn-1", &mockConn{})

	require.True(t, r.BindRoom("conn-1", "room-a"))
	require.True(t, r.BindRoom("conn-1", "room-b"))

	// Binding a second room does not evict the first.
	assert.ElementsMatch(t, []domain.RoomID{"room-a", "room-b"}, r.RoomsOf("conn-1"))

	r.UnbindRoom("conn-1", "room-a")
	rooms := r.RoomsOf("conn-1")
	require.Len(t, rooms, 1)
	assert.EqualValues(t, "room-b", rooms[0])
}

func TestRegistry_MembersOfRoom(t *testing.T) {
	r := app.NewRegistry()
	r.Bind("conn-1", &mockConn{})
	r.Bind("conn-2", &mockConn{})
	r.Bind("conn-3", &mockConn{})
	r.BindRoom("conn-1", "room-a")
	r.BindRoom("conn-2", "room-a")
	r.BindRoom("conn-3", "room-b")

	ids := make([]core.ConnID, 0, 2)
	for _, snap := range r.MembersOfRoom("room-a") {
		ids = append(ids, snap.ID)
	}
	assert.ElementsMatch(t, []core.ConnID{"conn-1", "conn-2"}, ids)

	r.Unbind("conn-2")
	assert.Len(t, r.MembersOfRoom("room-a"), 1)
}

func TestRegistry_RebindDropsRoomAssociations(t *testing.T) {
	r := app.NewRegistry()
	r.Bind("conn-1", &mockConn{})
	r.BindRoom("conn-1", "room-a")

	r.Bind("conn-1", &mockConn{})
	assert.Empty(t, r.RoomsOf("conn-1"))
}
