package tactic

import (
	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
)

const (
	oneTouchShotSpeed = 6.0 // m/s
	deadBallSpeed     = 0.1 // m/s below which a kicked ball has stopped
)

// Receiver waits at the receive point and takes the ball, either trapping
// it or, for a one-touch pass, redirecting it at the enemy goal. It is done
// once the ball reaches the robot, or once a kicked ball has died.
type Receiver struct {
	base
	pass    passing.Pass
	started bool
	done    bool
}

func NewReceiver(p passing.Pass) *Receiver {
	return &Receiver{base: newBase("receiver"), pass: p}
}

func (r *Receiver) UpdateControlParams(pass passing.Pass) { r.pass = pass }

func (r *Receiver) Pass() passing.Pass { return r.pass }

func (r *Receiver) Done() bool { return r.done }

func (r *Receiver) Step(w model.World) Intent {
	if r.done {
		return stop()
	}
	if w.Ball.Speed() >= evaluation.PassMinSpeed {
		r.started = true
	}

	robot, ok := r.robotIn(w)
	if !ok {
		return stop()
	}
	if robot.Position.DistanceTo(w.Ball.Position) <= evaluation.PossessionDistance {
		r.done = true
		return Intent{Kind: IntentStop, Dribbler: true}
	}
	if r.started && w.Ball.Speed() < deadBallSpeed {
		r.done = true
		return stop()
	}

	dest := r.pass.ReceiverPoint
	if r.started {
		dest = interceptPoint(w.Ball, robot.Position)
	}
	if r.pass.Type == passing.OneTouchShot {
		orient := oneTouchOrientation(w.Field, dest, w.Ball.Position)
		return Intent{
			Kind:        IntentKick,
			Destination: dest,
			Orientation: orient,
			KickSpeed:   oneTouchShotSpeed,
		}
	}
	face := w.Ball.Position.Minus(dest).Orientation()
	return Intent{Kind: IntentMove, Destination: dest, Orientation: face, Dribbler: true}
}

// interceptPoint is the closest point on the ball's forward path to pos.
func interceptPoint(b model.Ball, pos geom.Point) geom.Point {
	path := geom.Segment{Start: b.Position, End: b.Position.Add(b.Velocity.Normalize(20))}
	return path.ClosestPoint(pos)
}

// oneTouchOrientation bisects the incoming ball and the shot on goal so the
// ball deflects toward the goal centre.
func oneTouchOrientation(f model.Field, at, ball geom.Point) geom.Angle {
	toBall := ball.Minus(at).Normalize(1)
	toGoal := f.EnemyGoalCenter().Minus(at).Normalize(1)
	bisect := toBall.Add(toGoal)
	if bisect.Length() < 1e-6 {
		return toGoal.Orientation()
	}
	return bisect.Orientation()
}
