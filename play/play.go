// Package play sequences multi-robot strategies over ticks. A play is a
// resumable procedure: each Resume does a bounded slice of work against the
// latest world and returns the tactics the team should run until the next
// tick.
package play

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
	"github.com/nstehr/stp/stp-core/tactic"
)

var (
	// ErrPlayDone is returned by Resume once the play has reached its
	// terminal condition. The play's state does not change afterwards.
	ErrPlayDone = errors.New("play finished")

	// ErrInvalidWorld is returned by Resume for a snapshot that breaks the
	// play's preconditions. It signals a caller bug; the play's state is
	// left untouched.
	ErrInvalidWorld = errors.New("invalid world for play")
)

// Play is driven by a selector: IsApplicable decides whether to start it,
// InvariantHolds whether to keep going, and Resume is called once per new
// world snapshot while it is live. A play never retains the world past the
// call it was passed to.
type Play interface {
	Name() string
	IsApplicable(w model.World) bool
	InvariantHolds(w model.World) bool
	Resume(w model.World) (TacticSet, error)
}

// Factory builds a fresh play instance; restarting a play means building a
// new one.
type Factory func() (Play, error)

// TacticSet is the ordered set of tactics yielded for one tick.
type TacticSet []tactic.Tactic

func (s TacticSet) Names() []string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.Name()
	}
	return names
}

// Unique reports whether no tactic instance appears twice.
func (s TacticSet) Unique() bool {
	seen := make(map[uuid.UUID]bool, len(s))
	for _, t := range s {
		if seen[t.ID()] {
			return false
		}
		seen[t.ID()] = true
	}
	return true
}

func (s TacticSet) Contains(t tactic.Tactic) bool {
	for _, x := range s {
		if x.ID() == t.ID() {
			return true
		}
	}
	return false
}

// Stage is the suspended position of a multi-stage play. Stages only move
// forward.
type Stage int

const (
	StageSetup Stage = iota
	StageAlign
	StageDecide
	StageExecute
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StageAlign:
		return "align"
	case StageDecide:
		return "decide"
	case StageExecute:
		return "execute"
	case StageFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// PassOptimizer is the pass search a play steers. Callers push the world
// and passer point every tick before reading the best pass.
type PassOptimizer interface {
	SetWorld(w model.World)
	SetPasserPoint(p geom.Point)
	SetPasserRobotID(id model.RobotID)
	SetTargetRegion(r geom.Rectangle)
	BestPassSoFar() passing.PassWithRating
}

// OptimizerFactory builds the optimizer a play uses for one run.
type OptimizerFactory func(w model.World, passerPoint geom.Point, passType passing.PassType) PassOptimizer

// GeneratorFactory returns an OptimizerFactory backed by passing.Generator.
func GeneratorFactory(cfg passing.Config) OptimizerFactory {
	return func(w model.World, passerPoint geom.Point, passType passing.PassType) PassOptimizer {
		return passing.NewGenerator(w, passerPoint, passType, cfg)
	}
}

// StageEvent and CommitEvent are advisory diagnostics; nothing reads them
// back into a play.
type StageEvent struct {
	PlayID uuid.UUID
	Play   string
	From   Stage
	To     Stage
	At     model.Timestamp
}

type CommitEvent struct {
	PlayID    uuid.UUID
	Play      string
	PasserID  model.RobotID
	Pass      passing.Pass
	Rating    float64
	Threshold float64
	Elapsed   time.Duration
	At        model.Timestamp
}

// Recorder observes a play. Implementations must not block.
type Recorder interface {
	StageChanged(e StageEvent)
	PassCommitted(e CommitEvent)
}

type nopRecorder struct{}

func (nopRecorder) StageChanged(StageEvent)   {}
func (nopRecorder) PassCommitted(CommitEvent) {}
