package app

import (
	"encoding/json"

	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
	"github.com/rs/zerolog/log"
)

// DeliveryResult reports fan-out stats/backpressure to the caller.
type DeliveryResult struct {
	SentTo  int
	Dropped []core.ConnID
}

// Broadcaster fans an event out to the live connection set of a room.
// Delivery is fire and forget per recipient: a slow consumer is
// dropped from this delivery and never stalls the others.
type Broadcaster struct {
	Registry *Registry
}

// Deliver sends v to every connection bound to the room except
// exclude. Pass "" to include everyone.
func (b *Broadcaster) Deliver(roomID domain.RoomID, exclude core.ConnID, v any) DeliveryResult {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcast").Msg("marshal envelope")
		return DeliveryResult{}
	}
	res := DeliveryResult{}
	for _, snap := range b.Registry.MembersOfRoom(roomID) {
		if snap.ID == exclude {
			continue
		}
		if err := snap.Conn.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, snap.ID)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.broadcast").Str("room", string(roomID)).Str("exclude", string(exclude)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("delivery result")
	return res
}

// Reply sends v to a single connection, used for sender-only traffic
// like sync-on-join and the room-created acknowledgement.
func (b *Broadcaster) Reply(conn core.SignalConnection, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcast").Msg("marshal envelope")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.broadcast").Msg("reply dropped")
	}
}
