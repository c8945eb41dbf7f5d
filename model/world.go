package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nstehr/stp/stp-core/geom"
)

// Physical robot and ball limits shared by tactics and pass evaluation.
const (
	RobotMaxRadius = 0.09   // metres
	BallMaxRadius  = 0.0215 // metres
	RobotMaxSpeed  = 2.0    // metres per second, conservative for planning
)

// Timestamp is the vision time of a snapshot, measured from an arbitrary
// per-session epoch. It only ever moves forward.
type Timestamp time.Duration

func TimestampFromSeconds(s float64) Timestamp {
	return Timestamp(time.Duration(s * float64(time.Second)))
}

func (t Timestamp) Sub(o Timestamp) time.Duration { return time.Duration(t - o) }
func (t Timestamp) Seconds() float64              { return time.Duration(t).Seconds() }

// World is the immutable per-tick snapshot. It is passed by value and a
// new one replaces the previous wholesale every tick.
type World struct {
	Field     Field     `json:"field"`
	Ball      Ball      `json:"ball"`
	Friendly  Team      `json:"friendly"`
	Enemy     Team      `json:"enemy"`
	GameState GameState `json:"gameState"`
	Timestamp Timestamp `json:"timestamp"`
}

type Ball struct {
	Position geom.Point  `json:"position"`
	Velocity geom.Vector `json:"velocity"`
}

func (b Ball) Speed() float64 { return b.Velocity.Length() }

// ErrMalformedWorld marks a snapshot that violates the preconditions plays
// rely on.
var ErrMalformedWorld = errors.New("malformed world")

// Validate checks the structural preconditions of a snapshot: a usable
// field, a finite ball, finite robot poses and at least one friendly robot.
func (w World) Validate() error {
	if !w.Field.Valid() {
		return fmt.Errorf("%w: field has no playing area", ErrMalformedWorld)
	}
	if !w.Ball.Position.IsFinite() {
		return fmt.Errorf("%w: ball position %v", ErrMalformedWorld, w.Ball.Position)
	}
	if math.IsNaN(w.Ball.Velocity.X) || math.IsNaN(w.Ball.Velocity.Y) {
		return fmt.Errorf("%w: ball velocity %v", ErrMalformedWorld, w.Ball.Velocity)
	}
	if len(w.Friendly.Robots) == 0 {
		return fmt.Errorf("%w: no friendly robots", ErrMalformedWorld)
	}
	for _, team := range []struct {
		side string
		t    Team
	}{{"friendly", w.Friendly}, {"enemy", w.Enemy}} {
		for _, r := range team.t.Robots {
			if !r.finite() {
				return fmt.Errorf("%w: %s robot %d pose %v %v", ErrMalformedWorld, team.side, r.ID, r.Position, r.Orientation)
			}
		}
	}
	return nil
}
