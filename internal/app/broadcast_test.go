package app_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Sketch/internal/app"
	"github.com/dkeye/Sketch/internal/core"
)

type testEvent struct {
	Type string `json:"type"`
	Seq  int    `json:"seq"`
}

func setupRoom(t *testing.T) (*app.Broadcaster, map[core.ConnID]*mockConn) {
	t.Helper()
	reg := app.NewRegistry()
	conns := map[core.ConnID]*mockConn{
		"a": {},
		"b": {},
		"c": {},
	}
	for id, conn := range conns {
		reg.Bind(id, conn)
		require.True(t, reg.BindRoom(id, "room-1"))
	}
	return &app.Broadcaster{Registry: reg}, conns
}

func TestBroadcaster_Deliver_ExcludesSender(t *testing.T) {
	cast, conns := setupRoom(t)

	res := cast.Deliver("room-1", "a", testEvent{Type: "send-updates"})

	assert.Equal(t, 2, res.SentTo)
	assert.Empty(t, res.Dropped)
	assert.Empty(t, conns["a"].sent())
	assert.Len(t, conns["b"].sent(), 1)
	assert.Len(t, conns["c"].sent(), 1)
}

func TestBroadcaster_Deliver_NoExcludeReachesEveryone(t *testing.T) {
	cast, conns := setupRoom(t)

	res := cast.Deliver("room-1", "", testEvent{Type: "users-joined"})

	assert.Equal(t, 3, res.SentTo)
	for id, conn := range conns {
		assert.Len(t, conn.sent(), 1, "conn %s", id)
	}
}

func TestBroadcaster_Deliver_SlowRecipientIsDroppedNotFatal(t *testing.T) {
	cast, conns := setupRoom(t)
	conns["b"].sendErr = errors.New("backpressure")

	res := cast.Deliver("room-1", "", testEvent{Type: "send-updates"})

	assert.Equal(t, 2, res.SentTo)
	assert.Equal(t, []core.ConnID{"b"}, res.Dropped)
	assert.Len(t, conns["a"].sent(), 1)
	assert.Len(t, conns["c"].sent(), 1)
}

func TestBroadcaster_Deliver_EmptyRoom(t *testing.T) {
	cast := &app.Broadcaster{Registry: app.NewRegistry()}

	res := cast.Deliver("nowhere", "", testEvent{Type: "send-updates"})

	assert.Zero(t, res.SentTo)
	assert.Empty(t, res.Dropped)
}

func TestBroadcaster_Deliver_PerSenderOrderPreserved(t *testing.T) {
	cast, conns := setupRoom(t)

	for i := 0; i < 5; i++ {
		cast.Deliver("room-1", "a", testEvent{Type: "send-updates", Seq: i})
	}

	frames := conns["b"].sent()
	require.Len(t, frames, 5)
	for i, f := range frames {
		var ev testEvent
		require.NoError(t, json.Unmarshal(f, &ev))
		assert.Equal(t, i, ev.Seq)
	}
}

func TestBroadcaster_Reply_SingleRecipient(t *testing.T) {
	cast, conns := setupRoom(t)

	cast.Reply(conns["a"], testEvent{Type: "room-created"})

	assert.Len(t, conns["a"].sent(), 1)
	assert.Empty(t, conns["b"].sent())
	assert.Empty(t, conns["c"].sent())
}
