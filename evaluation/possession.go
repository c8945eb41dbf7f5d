// Package evaluation holds pure queries over a world snapshot that plays
// use to decide whether they still make sense.
package evaluation

import (
	"math"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

const (
	// PossessionDistance is how close the ball must be to a robot's centre
	// for that robot to be considered in control of it.
	PossessionDistance = model.RobotMaxRadius + model.BallMaxRadius + 0.03

	// PassMinSpeed is the ball speed above which a loose ball counts as
	// travelling rather than rolling to a stop.
	PassMinSpeed = 0.5

	passConeHalfAngle = 20.0 // degrees either side of the ball's heading
)

// TeamHasPossession reports whether any robot of team has the ball at its
// dribbler.
func TeamHasPossession(w model.World, team model.Team) bool {
	for _, r := range team.Robots {
		if r.Position.DistanceTo(w.Ball.Position) <= PossessionDistance {
			return true
		}
	}
	return false
}

// TeamPassInProgress reports whether the ball is loose, moving at pass speed
// and heading toward one of team's robots.
func TeamPassInProgress(w model.World, team model.Team) bool {
	if w.Ball.Speed() < PassMinSpeed {
		return false
	}
	if TeamHasPossession(w, team) {
		return false
	}
	heading := w.Ball.Velocity.Orientation()
	limit := geom.Degrees(passConeHalfAngle)
	for _, r := range team.Robots {
		toRobot := r.Position.Minus(w.Ball.Position)
		if toRobot.Length() < 1e-6 {
			continue
		}
		if toRobot.Orientation().MinDiff(heading) <= limit {
			return true
		}
	}
	return false
}

// BallTravelTime estimates how long a ball kicked at speed takes to cover
// distance, ignoring friction. Non-positive speeds never arrive.
func BallTravelTime(distance, speed float64) float64 {
	if speed <= 0 {
		return math.Inf(1)
	}
	return distance / speed
}
