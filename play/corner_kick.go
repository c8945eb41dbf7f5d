package play

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
	"github.com/nstehr/stp/stp-core/tactic"
)

const CornerKickName = "corner_kick"

const (
	defaultApplicableWhen = `IsOurFreeKick() && BallDistanceToEnemyCorner() <= CornerRadius`
	defaultInvariantWhile = `(IsPlaying() || IsReady()) && (!EnemyHasPossession() || FriendlyPassInProgress())`
)

// CornerKickConfig tunes the corner kick. The condition sources are expr
// programs evaluated against Env.
type CornerKickConfig struct {
	MaxTimeCommitToPassSeconds float64 `yaml:"max_time_commit_to_pass_seconds"`
	BallInCornerRadius         float64 `yaml:"ball_in_corner_radius"`
	ApplicableWhen             string  `yaml:"applicable_when"`
	InvariantWhile             string  `yaml:"invariant_while"`
}

func DefaultCornerKickConfig() CornerKickConfig {
	return CornerKickConfig{
		MaxTimeCommitToPassSeconds: 3.0,
		BallInCornerRadius:         0.5,
		ApplicableWhen:             defaultApplicableWhen,
		InvariantWhile:             defaultInvariantWhile,
	}
}

// Validate fills unset fields with defaults. A commit window of zero is
// allowed and means commit to whatever the first decision sees.
func (c *CornerKickConfig) Validate() {
	d := DefaultCornerKickConfig()
	if c.MaxTimeCommitToPassSeconds < 0 || math.IsNaN(c.MaxTimeCommitToPassSeconds) {
		c.MaxTimeCommitToPassSeconds = d.MaxTimeCommitToPassSeconds
	}
	if c.BallInCornerRadius <= 0 {
		c.BallInCornerRadius = d.BallInCornerRadius
	}
	if c.ApplicableWhen == "" {
		c.ApplicableWhen = d.ApplicableWhen
	}
	if c.InvariantWhile == "" {
		c.InvariantWhile = d.InvariantWhile
	}
}

func (c CornerKickConfig) MaxTimeCommitToPass() time.Duration {
	return time.Duration(c.MaxTimeCommitToPassSeconds * float64(time.Second))
}

// Option customises a CornerKick.
type Option func(*CornerKick)

func WithOptimizerFactory(f OptimizerFactory) Option {
	return func(c *CornerKick) { c.newOptimizer = f }
}

func WithRecorder(r Recorder) Option {
	return func(c *CornerKick) { c.recorder = r }
}

func WithDecayPolicy(p DecayPolicy) Option {
	return func(c *CornerKick) { c.decay = p }
}

// CornerKick takes our free kick from near an enemy corner. It lines a robot
// up behind the ball while two cherry pickers and two baits spread through
// the attacking half, searches for a one-touch pass into the far side, and
// commits to the best pass once it clears a bar that falls to zero over
// MaxTimeCommitToPass. The play ends when the receiver is done.
//
// A CornerKick is single use and must be resumed from one goroutine.
type CornerKick struct {
	id           uuid.UUID
	cfg          CornerKickConfig
	passCfg      passing.Config
	applicable   *Condition
	invariant    *Condition
	decay        DecayPolicy
	newOptimizer OptimizerFactory
	recorder     Recorder

	stage Stage

	goalie    *tactic.Goalie
	bait1     *tactic.Move
	bait2     *tactic.Move
	align     *tactic.Move
	cherryPos *tactic.CherryPick
	cherryNeg *tactic.CherryPick
	optimizer PassOptimizer

	aligning    bool
	lastWaitLog model.Timestamp
	commitStart model.Timestamp
	best        passing.PassWithRating

	committed passing.Pass
	passer    *tactic.Passer
	receiver  *tactic.Receiver
}

func NewCornerKick(cfg CornerKickConfig, passCfg passing.Config, opts ...Option) (*CornerKick, error) {
	cfg.Validate()
	passCfg.Validate()

	applicable, err := NewCondition(CornerKickName+".applicable", cfg.ApplicableWhen)
	if err != nil {
		return nil, err
	}
	invariant, err := NewCondition(CornerKickName+".invariant", cfg.InvariantWhile)
	if err != nil {
		return nil, err
	}

	c := &CornerKick{
		id:           uuid.New(),
		cfg:          cfg,
		passCfg:      passCfg,
		applicable:   applicable,
		invariant:    invariant,
		decay:        LinearDecay{Max: cfg.MaxTimeCommitToPass()},
		newOptimizer: GeneratorFactory(passCfg),
		recorder:     nopRecorder{},
		stage:        StageSetup,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CornerKickFactory builds fresh corner kicks with the same settings.
func CornerKickFactory(cfg CornerKickConfig, passCfg passing.Config, opts ...Option) Factory {
	return func() (Play, error) {
		return NewCornerKick(cfg, passCfg, opts...)
	}
}

func (c *CornerKick) Name() string  { return CornerKickName }
func (c *CornerKick) ID() uuid.UUID { return c.id }
func (c *CornerKick) Stage() Stage  { return c.stage }

// CommittedPass is the pass chosen in the decide stage. It is fixed for the
// rest of the play.
func (c *CornerKick) CommittedPass() (passing.Pass, bool) {
	return c.committed, c.stage >= StageExecute
}

func (c *CornerKick) env(w model.World) Env {
	return Env{World: w, CornerRadius: c.cfg.BallInCornerRadius}
}

func (c *CornerKick) IsApplicable(w model.World) bool {
	return c.applicable.Eval(c.env(w))
}

func (c *CornerKick) InvariantHolds(w model.World) bool {
	return c.invariant.Eval(c.env(w))
}

// Resume runs the corner kick up to its next suspension point. After the
// receiver is done it returns ErrPlayDone and does nothing else.
func (c *CornerKick) Resume(w model.World) (TacticSet, error) {
	if c.stage == StageFinished {
		return nil, ErrPlayDone
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorld, err)
	}

	switch c.stage {
	case StageSetup:
		c.setup(w)
		c.advance(StageAlign, w)
		return c.alignToBall(w), nil
	case StageAlign:
		return c.alignToBall(w), nil
	case StageDecide:
		return c.decide(w)
	case StageExecute:
		return c.execute(w)
	default:
		return nil, fmt.Errorf("corner kick in unknown stage %d", c.stage)
	}
}

func (c *CornerKick) advance(to Stage, w model.World) {
	from := c.stage
	c.stage = to
	slog.Debug("play stage changed", "play", CornerKickName, "id", c.id, "from", from, "to", to)
	c.recorder.StageChanged(StageEvent{
		PlayID: c.id,
		Play:   CornerKickName,
		From:   from,
		To:     to,
		At:     w.Timestamp,
	})
}

// setup builds every tactic and the pass search from the ball's position at
// the moment the play started.
func (c *CornerKick) setup(w model.World) {
	f := w.Field
	ball := w.Ball.Position
	defY := f.EnemyDefenseArea().YLength()

	// Baits go to the corner opposite the ball.
	opposite := f.EnemyCornerPos()
	if ball.Y > 0 {
		opposite = f.EnemyCornerNeg()
	}
	side := math.Copysign(0.5, opposite.Y)
	c.bait1 = tactic.NewMove("bait_near", true)
	c.bait2 = tactic.NewMove("bait_far", true)
	for _, b := range []struct {
		m *tactic.Move
		k float64
	}{{c.bait1, 0.5}, {c.bait2, 1.5}} {
		pos := opposite.Sub(geom.Vector{X: defY * b.k, Y: side})
		b.m.UpdateControlParams(pos, f.EnemyGoalCenter().Minus(pos).Orientation(), 0)
	}

	// Cherry pick regions stay clear of the defense area, with extra room on
	// the ball's side so pickers do not crowd the passer.
	posOffset := geom.Vector{X: defY}
	negOffset := geom.Vector{X: defY}
	if ball.Y > 0 {
		posOffset.X += defY
	} else {
		negOffset.X += defY
	}
	start := f.CenterPoint().Add(geom.Vector{X: 1})
	c.cherryPos = tactic.NewCherryPick(w, geom.NewRectangle(start, f.EnemyCornerPos().Sub(posOffset)), c.passCfg)
	c.cherryNeg = tactic.NewCherryPick(w, geom.NewRectangle(start, f.EnemyCornerNeg().Sub(negOffset)), c.passCfg)

	c.goalie = tactic.NewGoalie()
	c.align = tactic.NewMove("align_to_ball", false)

	c.optimizer = c.newOptimizer(w, ball, passing.OneTouchShot)
	c.optimizer.SetTargetRegion(geom.NewRectangle(geom.Point{X: 1, Y: f.YLength / 2}, f.EnemyCornerNeg()))

	slog.Info("corner kick started",
		"id", c.id,
		"ball", ball.String(),
		"bait_corner", opposite.String(),
	)
}

// update refreshes the per-tick parameters shared by the first stages.
func (c *CornerKick) update(w model.World) {
	ball := w.Ball.Position
	toCenter := w.Field.CenterPoint().Minus(ball)
	c.align.UpdateControlParams(ball.Sub(toCenter.Normalize(2*model.RobotMaxRadius)), toCenter.Orientation(), 0)
	c.optimizer.SetWorld(w)
	c.optimizer.SetPasserPoint(ball)
}

func (c *CornerKick) supportTactics() TacticSet {
	return TacticSet{c.goalie, c.align, c.cherryPos, c.cherryNeg, c.bait1, c.bait2}
}

func (c *CornerKick) alignToBall(w model.World) TacticSet {
	c.update(w)
	robot, assigned := c.align.AssignedRobot()

	if !c.aligning {
		if !assigned {
			if c.lastWaitLog == 0 || w.Timestamp.Sub(c.lastWaitLog) >= time.Second {
				slog.Debug("nothing assigned to align to ball yet", "id", c.id)
				c.lastWaitLog = w.Timestamp
			}
			return c.supportTactics()
		}
		// The freshly assigned robot gets one tick to act before its done
		// state counts.
		c.aligning = true
		slog.Info("aligning to ball", "id", c.id, "robot", robot)
		return c.supportTactics()
	}

	if c.align.Done() {
		if assigned {
			c.optimizer.SetPasserRobotID(robot)
		}
		c.commitStart = w.Timestamp
		c.advance(StageDecide, w)
		slog.Info("aligned, looking for a pass", "id", c.id, "robot", robot)
	}
	return c.supportTactics()
}

func (c *CornerKick) decide(w model.World) (TacticSet, error) {
	c.update(w)
	c.best = c.optimizer.BestPassSoFar()
	elapsed := w.Timestamp.Sub(c.commitStart)
	threshold := c.decay.MinScore(elapsed)

	slog.Debug("best pass so far",
		"id", c.id,
		"pass", c.best.Pass.String(),
		"rating", c.best.Rating,
		"threshold", threshold,
	)
	// NaN never clears the bar.
	if !(c.best.Rating >= threshold) {
		return c.supportTactics(), nil
	}

	c.commit(w, threshold, elapsed)
	return c.execute(w)
}

func (c *CornerKick) commit(w model.World, threshold float64, elapsed time.Duration) {
	c.committed = c.best.Pass
	c.passer = tactic.NewPasser(c.committed)
	c.receiver = tactic.NewReceiver(c.committed)
	passerID, _ := c.align.AssignedRobot()

	slog.Info("committing to pass",
		"id", c.id,
		"pass", c.committed.String(),
		"rating", c.best.Rating,
		"threshold", threshold,
		"elapsed", elapsed,
	)
	c.recorder.PassCommitted(CommitEvent{
		PlayID:    c.id,
		Play:      CornerKickName,
		PasserID:  passerID,
		Pass:      c.committed,
		Rating:    c.best.Rating,
		Threshold: threshold,
		Elapsed:   elapsed,
		At:        w.Timestamp,
	})
	c.advance(StageExecute, w)
}

func (c *CornerKick) execute(w model.World) (TacticSet, error) {
	if c.receiver.Done() {
		c.advance(StageFinished, w)
		slog.Info("corner kick finished", "id", c.id)
		return nil, ErrPlayDone
	}
	c.passer.UpdateControlParams(c.committed)
	c.receiver.UpdateControlParams(c.committed)
	return TacticSet{c.goalie, c.passer, c.receiver, c.bait1, c.bait2}, nil
}
