package tactic

import (
	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
)

// kickOffset is how far behind the ball centre the robot centre sits when
// lined up to kick.
const kickOffset = model.RobotMaxRadius + model.BallMaxRadius + 0.01

// Passer lines up behind the ball on the pass line and kicks it. It is done
// once the ball is travelling along the pass.
type Passer struct {
	base
	pass passing.Pass
	done bool
}

func NewPasser(p passing.Pass) *Passer {
	return &Passer{base: newBase("passer"), pass: p}
}

func (p *Passer) UpdateControlParams(pass passing.Pass) { p.pass = pass }

func (p *Passer) Pass() passing.Pass { return p.pass }

func (p *Passer) Done() bool { return p.done }

func (p *Passer) Step(w model.World) Intent {
	if p.done {
		return stop()
	}
	if ballLeftAlong(w.Ball, p.pass) {
		p.done = true
		return stop()
	}
	r, ok := p.robotIn(w)
	if !ok {
		return stop()
	}

	orient := p.pass.PasserOrientation()
	behind := w.Ball.Position.Sub(p.pass.Direction().Scale(kickOffset))
	if arrived(r, behind, orient) {
		return Intent{
			Kind:        IntentKick,
			Destination: w.Ball.Position,
			Orientation: orient,
			KickSpeed:   p.pass.Speed,
		}
	}
	return moveTo(behind, orient, 0)
}

// ballLeftAlong reports whether the ball has been kicked down the pass
// line: moving at pass speed in the pass direction, clear of the kick spot.
func ballLeftAlong(b model.Ball, pass passing.Pass) bool {
	if b.Speed() < evaluation.PassMinSpeed {
		return false
	}
	if b.Position.DistanceTo(pass.PasserPoint) < kickOffset {
		return false
	}
	const maxHeadingError = 0.35 // radians
	return b.Velocity.Orientation().MinDiff(pass.PasserOrientation()) <= geom.Angle(maxHeadingError)
}
