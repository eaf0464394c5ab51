package orch

import (
	"github.com/dkeye/Sketch/internal/app"
	"github.com/dkeye/Sketch/internal/core"
)

// Orchestrator ties the connection registry and the room store
// together. The signal adapter calls into it and decides what, if
// anything, to fan out based on the returned outcome; every outcome
// here is explicit even when the wire protocol stays silent.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomStore
}
