package tactic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
)

var (
	_ Tactic = (*Move)(nil)
	_ Tactic = (*CherryPick)(nil)
	_ Tactic = (*Goalie)(nil)
	_ Tactic = (*Passer)(nil)
	_ Tactic = (*Receiver)(nil)
)

func worldWith(ball model.Ball, robots ...model.Robot) model.World {
	return model.World{
		Field:    model.DefaultField(),
		Ball:     ball,
		Friendly: model.Team{Robots: robots},
	}
}

func TestAssignment(t *testing.T) {
	m := NewMove("align", false)
	_, ok := m.AssignedRobot()
	require.False(t, ok)

	m.Assign(4)
	id, ok := m.AssignedRobot()
	require.True(t, ok)
	assert.Equal(t, model.RobotID(4), id)

	m.Unassign()
	_, ok = m.AssignedRobot()
	assert.False(t, ok)
}

func TestIDsAreStableAndDistinct(t *testing.T) {
	a, b := NewMove("bait", true), NewMove("bait", true)
	assert.NotEqual(t, a.ID(), b.ID())
	id := a.ID()
	a.UpdateControlParams(geom.Point{X: 1}, 0, 0)
	a.Step(worldWith(model.Ball{}))
	assert.Equal(t, id, a.ID())
}

func TestMoveDoneOnArrival(t *testing.T) {
	dest := geom.Point{X: 4.2, Y: 2.7}
	orient := geom.Angle(1.0)
	m := NewMove("align", false)
	m.UpdateControlParams(dest, orient, 0)
	m.Assign(1)

	far := worldWith(model.Ball{}, model.Robot{ID: 1, Position: geom.Point{X: 2, Y: 2}, Orientation: orient})
	intent := m.Step(far)
	assert.False(t, m.Done())
	assert.Equal(t, IntentMove, intent.Kind)
	assert.Equal(t, dest, intent.Destination)

	there := worldWith(model.Ball{}, model.Robot{ID: 1, Position: dest, Orientation: orient})
	m.Step(there)
	assert.True(t, m.Done())

	// Done is sticky while the destination holds still.
	m.UpdateControlParams(dest, orient, 0)
	m.Step(far)
	assert.True(t, m.Done())

	// Moving the destination restarts the move.
	m.UpdateControlParams(geom.Point{X: 0, Y: 0}, orient, 0)
	assert.False(t, m.Done())
}

func TestLoopingMoveNeverDone(t *testing.T) {
	dest := geom.Point{X: 3, Y: -2}
	m := NewMove("bait", true)
	m.UpdateControlParams(dest, 0, 0)
	m.Assign(2)
	m.Step(worldWith(model.Ball{}, model.Robot{ID: 2, Position: dest}))
	assert.False(t, m.Done())
}

func TestUnassignedTacticStops(t *testing.T) {
	m := NewMove("align", false)
	m.UpdateControlParams(geom.Point{X: 1}, 0, 0)
	assert.Equal(t, IntentStop, m.Step(worldWith(model.Ball{})).Kind)
}

func testPass() passing.Pass {
	return passing.Pass{
		PasserPoint:   geom.Point{X: 4.4, Y: 2.9},
		ReceiverPoint: geom.Point{X: 2, Y: 1},
		Speed:         4,
		Type:          passing.ReceiveAndDribble,
	}
}

func TestPasserLinesUpThenKicks(t *testing.T) {
	pass := testPass()
	p := NewPasser(pass)
	p.Assign(1)
	ball := model.Ball{Position: pass.PasserPoint}

	intent := p.Step(worldWith(ball, model.Robot{ID: 1, Position: geom.Point{X: 3, Y: 3}}))
	require.Equal(t, IntentMove, intent.Kind)
	behind := intent.Destination

	intent = p.Step(worldWith(ball, model.Robot{ID: 1, Position: behind, Orientation: pass.PasserOrientation()}))
	require.Equal(t, IntentKick, intent.Kind)
	assert.InDelta(t, pass.Speed, intent.KickSpeed, 1e-9)
	assert.False(t, p.Done())

	kicked := model.Ball{
		Position: pass.PasserPoint.Add(pass.Direction().Scale(0.3)),
		Velocity: pass.Direction().Scale(pass.Speed),
	}
	p.Step(worldWith(kicked, model.Robot{ID: 1, Position: behind}))
	assert.True(t, p.Done())
	assert.Equal(t, pass, p.Pass())
}

func TestReceiverDoneWhenBallArrives(t *testing.T) {
	pass := testPass()
	r := NewReceiver(pass)
	r.Assign(3)

	waiting := worldWith(model.Ball{Position: pass.PasserPoint}, model.Robot{ID: 3, Position: geom.Point{X: 1, Y: 0}})
	intent := r.Step(waiting)
	assert.Equal(t, pass.ReceiverPoint, intent.Destination)
	assert.False(t, r.Done())

	inFlight := worldWith(
		model.Ball{Position: geom.Point{X: 3, Y: 1.8}, Velocity: pass.Direction().Scale(3)},
		model.Robot{ID: 3, Position: pass.ReceiverPoint},
	)
	r.Step(inFlight)
	assert.False(t, r.Done())

	arrived := worldWith(
		model.Ball{Position: pass.ReceiverPoint.Add(geom.Vector{X: 0.1}), Velocity: pass.Direction()},
		model.Robot{ID: 3, Position: pass.ReceiverPoint},
	)
	intent = r.Step(arrived)
	assert.True(t, r.Done())
	assert.True(t, intent.Dribbler)
}

func TestReceiverDoneWhenPassDies(t *testing.T) {
	pass := testPass()
	r := NewReceiver(pass)
	r.Assign(3)
	robot := model.Robot{ID: 3, Position: pass.ReceiverPoint}

	r.Step(worldWith(model.Ball{Position: geom.Point{X: 4, Y: 2.6}, Velocity: pass.Direction().Scale(4)}, robot))
	require.False(t, r.Done())
	r.Step(worldWith(model.Ball{Position: geom.Point{X: 3.5, Y: 2.2}}, robot))
	assert.True(t, r.Done())
}

func TestReceiverOneTouchAimsBetweenBallAndGoal(t *testing.T) {
	pass := testPass()
	pass.Type = passing.OneTouchShot
	r := NewReceiver(pass)
	r.Assign(3)

	intent := r.Step(worldWith(model.Ball{Position: pass.PasserPoint}, model.Robot{ID: 3, Position: pass.ReceiverPoint}))
	require.Equal(t, IntentKick, intent.Kind)

	toBall := pass.PasserPoint.Minus(pass.ReceiverPoint).Orientation()
	toGoal := model.DefaultField().EnemyGoalCenter().Minus(pass.ReceiverPoint).Orientation()
	assert.InDelta(t, float64(toBall.MinDiff(toGoal))/2, float64(intent.Orientation.MinDiff(toGoal)), 1e-6)
}

func TestGoalieBranches(t *testing.T) {
	f := model.DefaultField()
	goalie := model.Robot{ID: 0, Position: f.FriendlyGoalCenter().Add(geom.Vector{X: 0.3})}

	tests := map[string]struct {
		ball model.Ball
		kind IntentKind
	}{
		"shot on goal": {
			ball: model.Ball{Position: geom.Point{X: -2, Y: 0.2}, Velocity: geom.Vector{X: -4, Y: 0}},
			kind: IntentMove,
		},
		"loose ball in defense area": {
			ball: model.Ball{Position: geom.Point{X: -4.0, Y: 0.3}},
			kind: IntentChip,
		},
		"ball up field": {
			ball: model.Ball{Position: geom.Point{X: 4.4, Y: 2.9}},
			kind: IntentMove,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGoalie()
			g.Assign(0)
			intent := g.Step(worldWith(tt.ball, goalie))
			assert.Equal(t, tt.kind, intent.Kind)
			assert.False(t, g.Done())
			if name == "ball up field" {
				assert.True(t, f.FriendlyDefenseArea().Contains(intent.Destination))
			}
			if name == "shot on goal" {
				assert.InDelta(t, 0.2, intent.Destination.Y, 1e-9)
			}
		})
	}
}

func TestCherryPickStaysInRegion(t *testing.T) {
	region := geom.NewRectangle(geom.Point{X: 1, Y: 0}, geom.Point{X: 2.5, Y: 3})
	w := worldWith(model.Ball{Position: geom.Point{X: 4.4, Y: 2.9}},
		model.Robot{ID: 5, Position: geom.Point{X: 1.5, Y: 1.5}},
		model.Robot{ID: 6, Position: geom.Point{X: 4.5, Y: 3}},
	)
	c := NewCherryPick(w, region, passing.DefaultConfig())
	c.Assign(5)
	for range 10 {
		intent := c.Step(w)
		require.Equal(t, IntentMove, intent.Kind)
		require.True(t, region.Contains(intent.Destination), "destination %v outside region", intent.Destination)
	}
	assert.False(t, c.Done())
	assert.Equal(t, region, c.Region())
}
