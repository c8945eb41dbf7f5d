package tactic

import (
	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

// Move drives a robot to a pose. A looping Move holds the pose forever and
// never reports done; otherwise it is done once the robot arrives, and
// stays done until the destination is moved.
type Move struct {
	base
	loopForever bool
	destination geom.Point
	orientation geom.Angle
	finalSpeed  float64
	done        bool
}

func NewMove(name string, loopForever bool) *Move {
	return &Move{base: newBase(name), loopForever: loopForever}
}

func (m *Move) UpdateControlParams(dest geom.Point, orient geom.Angle, finalSpeed float64) {
	if m.destination.DistanceTo(dest) > PositionTolerance || m.orientation.MinDiff(orient) > OrientationTolerance {
		m.done = false
	}
	m.destination = dest
	m.orientation = orient
	m.finalSpeed = finalSpeed
}

func (m *Move) Destination() geom.Point { return m.destination }
func (m *Move) Orientation() geom.Angle { return m.orientation }

func (m *Move) Done() bool { return !m.loopForever && m.done }

func (m *Move) Step(w model.World) Intent {
	r, ok := m.robotIn(w)
	if !ok {
		return stop()
	}
	if arrived(r, m.destination, m.orientation) {
		m.done = true
	}
	return moveTo(m.destination, m.orientation, m.finalSpeed)
}
