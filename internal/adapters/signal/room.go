package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Sketch/internal/core"
	"github.com/dkeye/Sketch/internal/domain"
)

func (ctl *Controller) handleCreateRoom(sid core.ConnID, c core.SignalConnection, data []byte) {
	var p struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad create-room payload")
		return
	}
	if !ctl.creates.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("create-room rate limited")
		ctl.Cast.Reply(c, map[string]any{
			"type":  "error",
			"error": "rate_limited",
		})
		return
	}

	roomID, userName := ctl.Orch.CreateRoom(sid, p.Name)
	ctl.Cast.Reply(c, struct {
		Type     string        `json:"type"`
		RoomID   domain.RoomID `json:"roomId"`
		UserName string        `json:"userName"`
	}{"room-created", roomID, userName})
}

func (ctl *Controller) handleJoin(sid core.ConnID, c core.SignalConnection, data []byte) {
	var p struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		UserName string `json:"userName,omitempty"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join-room payload")
		return
	}

	res, err := ctl.Orch.Join(sid, domain.RoomID(p.RoomID), p.UserName)
	if err != nil {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("join on unknown room")
		ctl.Cast.Reply(c, struct {
			Type string `json:"type"`
		}{"invalid-room"})
		return
	}

	// Initial sync goes to the joiner only: current document state
	// first, then the member roster. Existing members hear nothing.
	ctl.Cast.Reply(c, struct {
		Type     string         `json:"type"`
		Elements []core.Element `json:"elements"`
	}{"send-updates", res.Elements})
	ctl.Cast.Reply(c, struct {
		Type    string           `json:"type"`
		Members []core.MemberDTO `json:"members"`
	}{"users-joined", res.Members})
}

func (ctl *Controller) handleLeave(sid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave-room payload")
		return
	}
	// No ack and no departure broadcast; a leave against an unknown
	// room is swallowed.
	_ = ctl.Orch.Leave(sid, domain.RoomID(p.RoomID))
}
