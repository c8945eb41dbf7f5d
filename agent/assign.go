package agent

import (
	"slices"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/ipc"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/play"
	"github.com/nstehr/stp/stp-core/tactic"
)

const idleTactic = "idle"

// anchor is where a tactic wants its robot, used to pick the nearest one.
func anchor(w model.World, t tactic.Tactic) geom.Point {
	switch t := t.(type) {
	case *tactic.Move:
		return t.Destination()
	case *tactic.Passer:
		return t.Pass().PasserPoint
	case *tactic.Receiver:
		return t.Pass().ReceiverPoint
	case *tactic.CherryPick:
		return t.Region().Centre()
	case *tactic.Goalie:
		return w.Field.FriendlyGoalCenter()
	default:
		return w.Ball.Position
	}
}

// assign binds the tactics in set to distinct robots and steps each one.
//
// The goalie tactic only ever gets the team's goalie, and the goalie never
// runs anything else. A tactic keeps last tick's robot while that robot is
// still on the field; the rest take the nearest free robot in set order.
// Tactics left without a robot are unassigned. Robots no tactic wants are
// told to stop.
func assign(w model.World, set play.TacticSet) []ipc.RobotCommand {
	var taken []model.RobotID
	goalie, hasGoalie := w.Friendly.Goalie()
	if hasGoalie {
		taken = append(taken, goalie.ID)
	}

	bound := make(map[int]model.RobotID, len(set))
	for i, t := range set {
		if _, ok := t.(*tactic.Goalie); ok {
			if hasGoalie {
				bound[i] = goalie.ID
			}
			continue
		}
		id, ok := t.AssignedRobot()
		if !ok || slices.Contains(taken, id) {
			continue
		}
		if _, onField := w.Friendly.Robot(id); !onField {
			continue
		}
		bound[i] = id
		taken = append(taken, id)
	}

	for i, t := range set {
		if _, ok := bound[i]; ok {
			continue
		}
		if _, ok := t.(*tactic.Goalie); ok {
			continue
		}
		if r, ok := w.Friendly.Nearest(anchor(w, t), taken...); ok {
			bound[i] = r.ID
			taken = append(taken, r.ID)
		}
	}

	var cmds []ipc.RobotCommand
	busy := make(map[model.RobotID]bool, len(bound))
	for i, t := range set {
		id, ok := bound[i]
		if !ok {
			t.Unassign()
			continue
		}
		t.Assign(id)
		busy[id] = true
		cmds = append(cmds, ipc.RobotCommand{
			RobotID:  id,
			Tactic:   t.Name(),
			TacticID: t.ID(),
			Intent:   t.Step(w),
		})
	}

	for _, r := range w.Friendly.Robots {
		if busy[r.ID] {
			continue
		}
		cmds = append(cmds, ipc.RobotCommand{
			RobotID: r.ID,
			Tactic:  idleTactic,
			Intent:  tactic.Intent{Kind: tactic.IntentStop},
		})
	}
	return cmds
}

// idle stops every robot.
func idle(w model.World) []ipc.RobotCommand {
	return assign(w, nil)
}
