package ipc

import (
	"github.com/google/uuid"

	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/tactic"
)

// TacticsMessage answers a world message with what every assigned robot
// should do. Play and Stage are empty when no play is running.
type TacticsMessage struct {
	Play     string         `json:"play,omitempty"`
	Stage    string         `json:"stage,omitempty"`
	Commands []RobotCommand `json:"commands"`
}

// RobotCommand is one robot's intent for the tick.
type RobotCommand struct {
	RobotID  model.RobotID `json:"robotId"`
	Tactic   string        `json:"tactic"`
	TacticID uuid.UUID     `json:"tacticId"`
	Intent   tactic.Intent `json:"intent"`
}
