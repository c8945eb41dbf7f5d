package ipc

import (
	"fmt"

	"github.com/nstehr/stp/stp-core/model"
)

// These constants must stay in sync with the bridge.
const (
	TypeHello   = "hello"
	TypeAck     = "ack"
	TypeWorld   = "world"
	TypeTactics = "tactics"
)

// HelloMessage names the team this connection plays for.
type HelloMessage struct {
	Team string `json:"team"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// WorldMessage is one vision/referee snapshot, already transformed so the
// friendly team attacks +x. Field is optional; when absent Division B
// dimensions are assumed.
type WorldMessage struct {
	Field     *model.Field `json:"field,omitempty"`
	Ball      model.Ball   `json:"ball"`
	Friendly  model.Team   `json:"friendly"`
	Enemy     model.Team   `json:"enemy"`
	Referee   RefereeData  `json:"referee"`
	Timestamp float64      `json:"timestamp"` // seconds
}

// RefereeData carries the game state by name.
type RefereeData struct {
	State      string `json:"state"`
	Restart    string `json:"restart,omitempty"`
	OurRestart bool   `json:"ourRestart,omitempty"`
}

// ToModel converts the message into a world snapshot. Unknown referee
// names are an error; structural checks are left to World.Validate.
func (m WorldMessage) ToModel() (model.World, error) {
	field := model.DefaultField()
	if m.Field != nil {
		field = *m.Field
	}
	state, ok := model.ParsePlayState(m.Referee.State)
	if !ok {
		return model.World{}, fmt.Errorf("unknown referee state %q", m.Referee.State)
	}
	restart := model.RestartNone
	if m.Referee.Restart != "" {
		if restart, ok = model.ParseRestartReason(m.Referee.Restart); !ok {
			return model.World{}, fmt.Errorf("unknown restart %q", m.Referee.Restart)
		}
	}
	return model.World{
		Field:     field,
		Ball:      m.Ball,
		Friendly:  m.Friendly,
		Enemy:     m.Enemy,
		GameState: model.GameState{Play: state, Restart: restart, OurRestart: m.Referee.OurRestart},
		Timestamp: model.TimestampFromSeconds(m.Timestamp),
	}, nil
}
