package play

import (
	"math"

	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/model"
)

// Env wraps a world snapshot and exposes helper methods callable from
// condition expressions.
type Env struct {
	World        model.World
	CornerRadius float64
}

func (e Env) IsPlaying() bool       { return e.World.GameState.IsPlaying() }
func (e Env) IsReady() bool         { return e.World.GameState.IsReady() }
func (e Env) IsStopped() bool       { return e.World.GameState.IsStopped() }
func (e Env) IsOurFreeKick() bool   { return e.World.GameState.IsOurFreeKick() }
func (e Env) IsTheirFreeKick() bool { return e.World.GameState.IsTheirFreeKick() }

func (e Env) BallX() float64     { return e.World.Ball.Position.X }
func (e Env) BallY() float64     { return e.World.Ball.Position.Y }
func (e Env) BallSpeed() float64 { return e.World.Ball.Speed() }

// BallDistanceToEnemyCorner is the distance from the ball to the nearer of
// the two enemy corners.
func (e Env) BallDistanceToEnemyCorner() float64 {
	b := e.World.Ball.Position
	f := e.World.Field
	return math.Min(b.DistanceTo(f.EnemyCornerPos()), b.DistanceTo(f.EnemyCornerNeg()))
}

func (e Env) EnemyHasPossession() bool {
	return evaluation.TeamHasPossession(e.World, e.World.Enemy)
}

func (e Env) FriendlyHasPossession() bool {
	return evaluation.TeamHasPossession(e.World, e.World.Friendly)
}

func (e Env) FriendlyPassInProgress() bool {
	return evaluation.TeamPassInProgress(e.World, e.World.Friendly)
}

func (e Env) FriendlyRobotCount() int { return len(e.World.Friendly.Robots) }
func (e Env) EnemyRobotCount() int    { return len(e.World.Enemy.Robots) }
