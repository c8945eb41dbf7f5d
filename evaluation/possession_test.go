package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

func worldWithBall(pos geom.Point, vel geom.Vector) model.World {
	return model.World{
		Field: model.DefaultField(),
		Ball:  model.Ball{Position: pos, Velocity: vel},
		Friendly: model.Team{Robots: []model.Robot{
			{ID: 1, Position: geom.Point{X: 4.3, Y: 2.8}},
			{ID: 2, Position: geom.Point{X: 2, Y: 0}},
		}},
		Enemy: model.Team{Robots: []model.Robot{
			{ID: 7, Position: geom.Point{X: 3.5, Y: -1}},
		}},
	}
}

func TestTeamHasPossession(t *testing.T) {
	w := worldWithBall(geom.Point{X: 4.4, Y: 2.8}, geom.Vector{})
	assert.True(t, TeamHasPossession(w, w.Friendly))
	assert.False(t, TeamHasPossession(w, w.Enemy))

	w = worldWithBall(geom.Point{X: 3.5, Y: -0.9}, geom.Vector{})
	assert.True(t, TeamHasPossession(w, w.Enemy))
}

func TestTeamPassInProgress(t *testing.T) {
	// Ball leaving the corner toward robot 2.
	from := geom.Point{X: 4, Y: 2.5}
	vel := geom.Point{X: 2, Y: 0}.Minus(from).Normalize(3)
	w := worldWithBall(from, vel)
	assert.True(t, TeamPassInProgress(w, w.Friendly))
	assert.False(t, TeamPassInProgress(w, w.Enemy))

	// Slow ball is not a pass.
	w = worldWithBall(from, vel.Normalize(0.2))
	assert.False(t, TeamPassInProgress(w, w.Friendly))

	// Heading across the field, away from every friendly robot.
	w = worldWithBall(from, vel.Perpendicular())
	assert.False(t, TeamPassInProgress(w, w.Friendly))
}

func TestBallTravelTime(t *testing.T) {
	assert.InDelta(t, 2.0, BallTravelTime(8, 4), 1e-9)
	assert.True(t, BallTravelTime(1, 0) > 1e9)
}
