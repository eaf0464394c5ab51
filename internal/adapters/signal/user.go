package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
)

func (ctl *Controller) handleRename(sid core.ConnID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		RoomID      string `json:"roomId"`
		NewUserName string `json:"newUserName"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad update-username payload")
		return
	}
	roomID := domain.RoomID(p.RoomID)
	if err := ctl.Orch.Rename(roomID, sid, p.NewUserName); err != nil {
		// Unknown room or non-member: the protocol stays silent.
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.NewUserName).Msg("rename")

	members, err := ctl.Orch.Members(roomID)
	if err != nil {
		return
	}
	ctl.Cast.Deliver(roomID, sid, struct {
		Type    string           `json:"type"`
		Members []core.MemberDTO `json:"members"`
	}{"users-joined", members})
}

func (ctl *Controller) handlePing(c core.SignalConnection) {
	ctl.Cast.Reply(c, struct {
		Type string `json:"type"`
	}{"pong"})
}
