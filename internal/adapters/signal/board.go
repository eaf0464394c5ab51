package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
)

func (ctl *Controller) handleElements(sid core.ConnID, data []byte) {
	var p struct {
		Type     string         `json:"type"`
		RoomID   string         `json:"roomId"`
		Elements []core.Element `json:"elements"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad elements-update payload")
		return
	}
	roomID := domain.RoomID(p.RoomID)
	if err := ctl.Orch.ReplaceElements(roomID, p.Elements); err != nil {
		return
	}
	ctl.Cast.Deliver(roomID, sid, struct {
		Type     string         `json:"type"`
		Elements []core.Element `json:"elements"`
	}{"send-updates", p.Elements})
}

func (ctl *Controller) handleCursor(sid core.ConnID, data []byte) {
	var p struct {
		Type     string          `json:"type"`
		RoomID   string          `json:"roomId"`
		Position json.RawMessage `json:"position"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad cursor-update payload")
		return
	}
	roomID := domain.RoomID(p.RoomID)
	userName, err := ctl.Orch.CursorMeta(roomID, sid)
	if err != nil {
		return
	}
	ctl.Cast.Deliver(roomID, sid, struct {
		Type         string          `json:"type"`
		ConnectionID core.ConnID     `json:"connectionId"`
		Position     json.RawMessage `json:"position"`
		UserName     string          `json:"userName"`
	}{"cursor-update", sid, p.Position, userName})
}
