package tactic

import (
	"log/slog"

	bt "github.com/joeycumines/go-behaviortree"

	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

const (
	goalieClearSpeed   = 3.0 // chip speed out of the defense area
	goalieArcRadius    = 0.5 // how far off the goal line the goalie stands
	goalieShotMinSpeed = 0.8 // slower balls are not treated as shots
)

// Goalie guards the friendly goal. Each step ticks a small behaviour tree:
// block a ball heading into the goal, otherwise clear a loose ball out of
// the defense area, otherwise hold the arc between ball and goal.
type Goalie struct {
	base
	tree bt.Node

	// valid only while Step runs
	world  model.World
	robot  model.Robot
	intent Intent
}

func NewGoalie() *Goalie {
	g := &Goalie{base: newBase("goalie")}
	g.tree = bt.New(
		bt.Selector,
		bt.New(bt.Sequence, condition(g.shotOnGoal), action(g.blockShot)),
		bt.New(bt.Sequence, condition(g.looseBallInDefenseArea), action(g.clearBall)),
		action(g.holdArc),
	)
	return g
}

func (g *Goalie) Done() bool { return false }

func (g *Goalie) Step(w model.World) Intent {
	r, ok := g.robotIn(w)
	if !ok {
		return stop()
	}
	g.world, g.robot, g.intent = w, r, stop()
	defer func() { g.world = model.World{} }()

	if _, err := g.tree.Tick(); err != nil {
		slog.Warn("goalie tree error", "tactic", g.ID(), "error", err)
		return stop()
	}
	return g.intent
}

func condition(fn func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if fn() {
			return bt.Success, nil
		}
		return bt.Failure, nil
	})
}

func action(fn func()) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		fn()
		return bt.Success, nil
	})
}

// goalLineCrossing is where the ball's path meets the friendly goal line,
// if it is moving toward it.
func (g *Goalie) goalLineCrossing() (geom.Point, bool) {
	b := g.world.Ball
	if b.Velocity.X >= 0 || b.Speed() < goalieShotMinSpeed {
		return geom.Point{}, false
	}
	lineX := g.world.Field.FriendlyGoalCenter().X
	t := (lineX - b.Position.X) / b.Velocity.X
	return geom.Point{X: lineX, Y: b.Position.Y + b.Velocity.Y*t}, true
}

func (g *Goalie) shotOnGoal() bool {
	p, ok := g.goalLineCrossing()
	if !ok {
		return false
	}
	half := g.world.Field.GoalYLength/2 + model.BallMaxRadius
	return p.Y >= -half && p.Y <= half
}

func (g *Goalie) blockShot() {
	crossing, _ := g.goalLineCrossing()
	path := geom.Segment{Start: g.world.Ball.Position, End: crossing}
	dest := path.ClosestPoint(g.robot.Position)
	g.intent = moveTo(dest, g.world.Ball.Position.Minus(dest).Orientation(), 0)
}

func (g *Goalie) looseBallInDefenseArea() bool {
	b := g.world.Ball
	return g.world.Field.FriendlyDefenseArea().Contains(b.Position) && b.Speed() < evaluation.PassMinSpeed
}

func (g *Goalie) clearBall() {
	b := g.world.Ball.Position
	away := b.Minus(g.world.Field.FriendlyGoalCenter())
	g.intent = Intent{
		Kind:        IntentChip,
		Destination: b,
		Orientation: away.Orientation(),
		KickSpeed:   goalieClearSpeed,
	}
}

func (g *Goalie) holdArc() {
	f := g.world.Field
	goal := f.FriendlyGoalCenter()
	toBall := g.world.Ball.Position.Minus(goal)
	dest := f.FriendlyDefenseArea().ClampPoint(goal.Add(toBall.Normalize(goalieArcRadius)))
	if toBall.Length() < 1e-6 {
		dest = goal.Add(geom.Vector{X: goalieArcRadius})
	}
	g.intent = moveTo(dest, g.world.Ball.Position.Minus(dest).Orientation(), 0)
}
