package model

import (
	"math"

	"github.com/nstehr/stp/stp-core/geom"
)

type RobotID int

type Robot struct {
	ID          RobotID     `json:"id"`
	Position    geom.Point  `json:"position"`
	Velocity    geom.Vector `json:"velocity"`
	Orientation geom.Angle  `json:"orientation"`
}

func (r Robot) finite() bool {
	o := float64(r.Orientation)
	return r.Position.IsFinite() && !math.IsNaN(o) && !math.IsInf(o, 0) &&
		!math.IsNaN(r.Velocity.X) && !math.IsNaN(r.Velocity.Y)
}

// Team is one side's robots. GoalieID is only meaningful when HasGoalie is
// set.
type Team struct {
	Robots    []Robot `json:"robots"`
	GoalieID  RobotID `json:"goalieId"`
	HasGoalie bool    `json:"hasGoalie"`
}

// Robot looks up a robot by id.
func (t Team) Robot(id RobotID) (Robot, bool) {
	for _, r := range t.Robots {
		if r.ID == id {
			return r, true
		}
	}
	return Robot{}, false
}

// Goalie returns the designated goalie if it is on the field.
func (t Team) Goalie() (Robot, bool) {
	if !t.HasGoalie {
		return Robot{}, false
	}
	return t.Robot(t.GoalieID)
}

// Nearest returns the robot closest to p, skipping any id in exclude.
func (t Team) Nearest(p geom.Point, exclude ...RobotID) (Robot, bool) {
	var nearest Robot
	found := false
	best := math.MaxFloat64
	for _, r := range t.Robots {
		if containsID(exclude, r.ID) {
			continue
		}
		if d := r.Position.DistanceTo(p); d < best {
			best = d
			nearest = r
			found = true
		}
	}
	return nearest, found
}

func containsID(ids []RobotID, id RobotID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
