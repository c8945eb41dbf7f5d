package passing

import (
	"math"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

// Objective is what a pass is rated against: the world, the region
// receivers must stand in and the robot that will take the kick.
type Objective struct {
	World     model.World
	Region    geom.Rectangle
	PasserID  model.RobotID
	HasPasser bool
}

// RatePass scores p in [0,1]. The score is the product of independent
// factors so any one of them at zero vetoes the pass:
//   - the pass is well formed and inside the target region
//   - the receive point is a sensible place on the field
//   - a friendly robot can get there before the ball
//   - no enemy can intercept along the way
//   - for one-touch passes, there is an open shot from the receive point
func RatePass(o Objective, p Pass, cfg Config) float64 {
	if o.Region.Degenerate() || !o.Region.Contains(p.ReceiverPoint) {
		return 0
	}
	if p.Speed < cfg.MinPassSpeed || p.Speed > cfg.MaxPassSpeed || p.Length() < 2*model.RobotMaxRadius {
		return 0
	}
	if !o.World.Field.Valid() {
		return 0
	}

	r := staticPositionQuality(o.World.Field, p.ReceiverPoint, cfg) *
		friendlyCapability(o, p) *
		(1 - enemyInterceptRisk(o.World, p, cfg))
	if p.Type == OneTouchShot {
		r *= shotQuality(o.World, p)
	}
	if math.IsNaN(r) {
		return 0
	}
	return geom.Clamp(r, 0, 1)
}

// staticPositionQuality prefers points away from the field lines and
// further up the field, and rules out the enemy defense area where a
// receiver may not stand.
func staticPositionQuality(f model.Field, pt geom.Point, cfg Config) float64 {
	if f.EnemyDefenseArea().Expand(model.RobotMaxRadius).Contains(pt) {
		return 0
	}
	lines := f.FieldLines()
	edge := math.Min(
		math.Min(lines.Max.X-pt.X, pt.X-lines.Min.X),
		math.Min(lines.Max.Y-pt.Y, pt.Y-lines.Min.Y),
	)
	inside := geom.Sigmoid(edge, cfg.SidelineMargin, cfg.SidelineMargin)
	upfield := 0.6 + 0.4*geom.Sigmoid(pt.X, 0, f.XLength/2)
	return inside * upfield
}

// friendlyCapability is the best chance of any eligible friendly robot
// reaching the receive point before the ball does.
func friendlyCapability(o Objective, p Pass) float64 {
	ballTime := p.TravelTime()
	best := 0.0
	for _, r := range o.World.Friendly.Robots {
		if o.HasPasser && r.ID == o.PasserID {
			continue
		}
		robotTime := r.Position.DistanceTo(p.ReceiverPoint) / model.RobotMaxSpeed
		best = math.Max(best, geom.Sigmoid(ballTime-robotTime, 0, 0.5))
	}
	return best
}

// enemyInterceptRisk is the highest chance any enemy robot reaches the
// pass line before the ball passes that point.
func enemyInterceptRisk(w model.World, p Pass, cfg Config) float64 {
	line := geom.Segment{Start: p.PasserPoint, End: p.ReceiverPoint}
	risk := 0.0
	for _, e := range w.Enemy.Robots {
		c := line.ClosestPoint(e.Position)
		ballTime := p.PasserPoint.DistanceTo(c) / p.Speed
		reach := math.Max(e.Position.DistanceTo(c)-model.RobotMaxRadius-model.BallMaxRadius, 0)
		enemyTime := 0.0 // already standing in the lane
		if reach > 0 {
			enemyTime = reach/model.RobotMaxSpeed + cfg.EnemyReactionTime
		}
		risk = math.Max(risk, geom.Sigmoid(ballTime-enemyTime, 0, 0.4))
	}
	return risk
}

const shotSamples = 5

// shotQuality mixes how much of the enemy goal mouth is unblocked from pt
// with how sharply the ball would have to be deflected.
func shotQuality(w model.World, p Pass) float64 {
	pos, neg := w.Field.EnemyGoalPostPos(), w.Field.EnemyGoalPostNeg()
	open := 0
	for i := range shotSamples {
		target := geom.Point{
			X: pos.X,
			Y: geom.Lerp(neg.Y, pos.Y, (float64(i)+0.5)/shotSamples),
		}
		if shotLineClear(w, geom.Segment{Start: p.ReceiverPoint, End: target}) {
			open++
		}
	}
	openness := float64(open) / shotSamples

	incoming := p.PasserPoint.Minus(p.ReceiverPoint).Orientation()
	toGoal := w.Field.EnemyGoalCenter().Minus(p.ReceiverPoint).Orientation()
	deflection := incoming.MinDiff(toGoal).Degrees()
	feasible := geom.Sigmoid(90-deflection, 0, 40)

	return (0.3 + 0.7*openness) * feasible
}

func shotLineClear(w model.World, shot geom.Segment) bool {
	for _, e := range w.Enemy.Robots {
		if shot.DistanceToPoint(e.Position) < model.RobotMaxRadius+model.BallMaxRadius {
			return false
		}
	}
	return true
}
