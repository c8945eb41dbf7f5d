// Package tactic holds single-robot behaviours. A play creates tactics and
// keeps updating their parameters; an assignment stage outside the play
// binds each one to a robot and steps it against the latest world to get
// an actuation intent.
package tactic

import (
	"github.com/google/uuid"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

// Tactic is the capability set every behaviour exposes.
type Tactic interface {
	// ID is stable for the lifetime of the instance so assignment and done
	// state stay continuous across ticks.
	ID() uuid.UUID
	Name() string

	AssignedRobot() (model.RobotID, bool)
	Assign(id model.RobotID)
	Unassign()

	// Done is idempotent; it only changes when Step observes progress or
	// the owner changes the tactic's parameters.
	Done() bool

	// Step advances the behaviour with the assigned robot's view of w.
	Step(w model.World) Intent
}

type IntentKind string

const (
	IntentStop IntentKind = "stop"
	IntentMove IntentKind = "move"
	IntentKick IntentKind = "kick"
	IntentChip IntentKind = "chip"
)

// Intent is what a tactic asks the robot to do this tick.
type Intent struct {
	Kind        IntentKind `json:"kind"`
	Destination geom.Point `json:"destination"`
	Orientation geom.Angle `json:"orientation"`
	FinalSpeed  float64    `json:"finalSpeed,omitempty"`
	KickSpeed   float64    `json:"kickSpeed,omitempty"`
	Dribbler    bool       `json:"dribbler,omitempty"`
}

func stop() Intent { return Intent{Kind: IntentStop} }

func moveTo(dest geom.Point, orient geom.Angle, finalSpeed float64) Intent {
	return Intent{Kind: IntentMove, Destination: dest, Orientation: orient, FinalSpeed: finalSpeed}
}

// Tolerances for "the robot has arrived".
const (
	PositionTolerance    = 0.05 // metres
	OrientationTolerance = 0.1  // radians
)

// base carries identity and assignment; concrete tactics embed it.
type base struct {
	id       uuid.UUID
	name     string
	robot    model.RobotID
	assigned bool
}

func newBase(name string) base {
	return base{id: uuid.New(), name: name}
}

func (b *base) ID() uuid.UUID { return b.id }
func (b *base) Name() string  { return b.name }
func (b *base) Unassign()     { b.assigned = false }

func (b *base) AssignedRobot() (model.RobotID, bool) { return b.robot, b.assigned }

func (b *base) Assign(id model.RobotID) {
	b.robot = id
	b.assigned = true
}

// robotIn finds the assigned robot in w. A tactic with no robot, or whose
// robot has left the field, has nothing to drive.
func (b *base) robotIn(w model.World) (model.Robot, bool) {
	if !b.assigned {
		return model.Robot{}, false
	}
	return w.Friendly.Robot(b.robot)
}

func arrived(r model.Robot, dest geom.Point, orient geom.Angle) bool {
	return r.Position.DistanceTo(dest) <= PositionTolerance &&
		r.Orientation.MinDiff(orient) <= OrientationTolerance
}
