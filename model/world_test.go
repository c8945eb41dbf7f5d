package model

import (
	"errors"
	"math"
	"testing"

	"github.com/nstehr/stp/stp-core/geom"
)

func validWorld() World {
	return World{
		Field:    DefaultField(),
		Ball:     Ball{Position: geom.Point{X: 4.4, Y: 2.9}},
		Friendly: Team{Robots: []Robot{{ID: 1}}},
	}
}

func TestWorldValidate(t *testing.T) {
	if err := validWorld().Validate(); err != nil {
		t.Fatalf("expected valid world, got %v", err)
	}

	tests := map[string]func(*World){
		"empty field":   func(w *World) { w.Field = Field{} },
		"nan ball":      func(w *World) { w.Ball.Position.X = math.NaN() },
		"inf ball":      func(w *World) { w.Ball.Position.Y = math.Inf(1) },
		"nan velocity":  func(w *World) { w.Ball.Velocity.Y = math.NaN() },
		"no our robots": func(w *World) { w.Friendly.Robots = nil },
		"nan friendly robot": func(w *World) {
			w.Friendly.Robots = append(w.Friendly.Robots, Robot{ID: 2, Position: geom.Point{Y: math.NaN()}})
		},
		"inf enemy robot": func(w *World) {
			w.Enemy.Robots = []Robot{{ID: 20, Position: geom.Point{X: math.Inf(-1)}}}
		},
		"nan enemy robot": func(w *World) {
			w.Enemy.Robots = []Robot{{ID: 20, Position: geom.Point{X: math.NaN()}}}
		},
		"nan orientation": func(w *World) { w.Friendly.Robots[0].Orientation = geom.Angle(math.NaN()) },
	}
	for name, mutate := range tests {
		w := validWorld()
		mutate(&w)
		if err := w.Validate(); !errors.Is(err, ErrMalformedWorld) {
			t.Errorf("%s: expected ErrMalformedWorld, got %v", name, err)
		}
	}
}

func TestFieldCorners(t *testing.T) {
	f := DefaultField()
	if got := f.EnemyCornerPos(); got != (geom.Point{X: 4.5, Y: 3}) {
		t.Errorf("EnemyCornerPos = %v", got)
	}
	if got := f.EnemyCornerNeg(); got != (geom.Point{X: 4.5, Y: -3}) {
		t.Errorf("EnemyCornerNeg = %v", got)
	}
	da := f.EnemyDefenseArea()
	if da.XLength() != 1 || da.YLength() != 2 {
		t.Errorf("unexpected enemy defense area %+v", da)
	}
	if !da.Contains(f.EnemyGoalCenter()) {
		t.Error("enemy goal centre should touch the enemy defense area")
	}
	if f.FriendlyDefenseArea().Contains(f.EnemyGoalCenter()) {
		t.Error("friendly defense area should not contain the enemy goal")
	}
}

func TestGameStateFreeKick(t *testing.T) {
	ours := GameState{Play: Ready, Restart: RestartIndirectFree, OurRestart: true}
	if !ours.IsOurFreeKick() || ours.IsTheirFreeKick() {
		t.Error("expected our free kick")
	}
	theirs := GameState{Play: Ready, Restart: RestartDirectFree}
	if theirs.IsOurFreeKick() || !theirs.IsTheirFreeKick() {
		t.Error("expected their free kick")
	}
	kickoff := GameState{Play: Ready, Restart: RestartKickoff, OurRestart: true}
	if kickoff.IsOurFreeKick() {
		t.Error("kickoff is not a free kick")
	}
}

func TestTeamNearestExcludes(t *testing.T) {
	team := Team{Robots: []Robot{
		{ID: 1, Position: geom.Point{X: 0, Y: 0}},
		{ID: 2, Position: geom.Point{X: 1, Y: 0}},
	}}
	r, ok := team.Nearest(geom.Point{}, 1)
	if !ok || r.ID != 2 {
		t.Errorf("expected robot 2, got %+v (ok=%v)", r, ok)
	}
	if _, ok := team.Nearest(geom.Point{}, 1, 2); ok {
		t.Error("expected no robot when all are excluded")
	}
	if _, ok := team.Goalie(); ok {
		t.Error("expected no goalie when HasGoalie is unset")
	}
}
