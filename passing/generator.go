package passing

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
)

// Generator keeps the best pass it has found for one passer point and
// target region, refining a population of candidates a little at a time.
//
// Refinement is pull-driven: every SetWorld runs Config.StepsPerUpdate
// bounded steps, so a caller that only ever pushes snapshots from one
// goroutine gets deterministic results for a fixed seed. All methods are
// safe for concurrent use; the lock is internal and held only for bounded
// work.
type Generator struct {
	mu sync.Mutex

	cfg      Config
	passType PassType
	rng      *rand.Rand

	world       model.World
	passerPoint geom.Point
	passerID    model.RobotID
	hasPasserID bool
	region      geom.Rectangle

	candidates []PassWithRating
	best       PassWithRating
	steps      int
}

// NewGenerator seeds a population of candidates aimed anywhere on the
// field. Call SetTargetRegion to narrow it.
func NewGenerator(w model.World, passerPoint geom.Point, passType PassType, cfg Config) *Generator {
	cfg.Validate()
	g := &Generator{
		cfg:         cfg,
		passType:    passType,
		rng:         rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		world:       w,
		passerPoint: passerPoint,
		region:      w.Field.FieldLines(),
	}
	g.candidates = make([]PassWithRating, cfg.NumCandidates)
	for i := range g.candidates {
		g.candidates[i] = g.rate(g.randomPass())
	}
	g.best = g.bestCandidate()
	return g
}

// SetWorld refreshes the snapshot every candidate is rated against and runs
// one bounded slice of refinement.
func (g *Generator) SetWorld(w model.World) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.world = w
	g.refine(g.cfg.StepsPerUpdate)
}

func (g *Generator) SetPasserPoint(p geom.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.passerPoint = p
	g.rescore()
}

// SetPasserRobotID excludes the passer from being considered a receiver.
func (g *Generator) SetPasserRobotID(id model.RobotID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.passerID = id
	g.hasPasserID = true
	g.rescore()
}

// SetTargetRegion restricts receive points to r. Existing candidates are
// pulled inside it. A degenerate region rates every pass at zero.
func (g *Generator) SetTargetRegion(r geom.Rectangle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.region = r
	for i := range g.candidates {
		g.candidates[i].Pass.ReceiverPoint = r.ClampPoint(g.candidates[i].Pass.ReceiverPoint)
	}
	g.best.Pass.ReceiverPoint = r.ClampPoint(g.best.Pass.ReceiverPoint)
	g.rescore()
}

// BestPassSoFar returns the incumbent without doing any search. Its rating
// reflects the most recent snapshot, passer point and region.
func (g *Generator) BestPassSoFar() PassWithRating {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.best
}

func (g *Generator) objective() Objective {
	return Objective{
		World:     g.world,
		Region:    g.region,
		PasserID:  g.passerID,
		HasPasser: g.hasPasserID,
	}
}

func (g *Generator) rate(p Pass) PassWithRating {
	p.PasserPoint = g.passerPoint
	p.Type = g.passType
	return PassWithRating{Pass: p, Rating: RatePass(g.objective(), p, g.cfg)}
}

// rescore re-rates every candidate and the incumbent so no rating outlives
// the context it was computed in.
func (g *Generator) rescore() {
	for i := range g.candidates {
		g.candidates[i] = g.rate(g.candidates[i].Pass)
	}
	g.best = g.rate(g.best.Pass)
	if c := g.bestCandidate(); c.Rating > g.best.Rating {
		g.best = c
	}
}

// refine runs n hill-climbing steps over the population. Caller holds mu.
func (g *Generator) refine(n int) {
	g.rescore()
	for range n {
		for i, c := range g.candidates {
			if next := g.rate(g.perturb(c.Pass)); next.Rating > c.Rating {
				g.candidates[i] = next
			}
		}
		g.steps++
		if g.steps%g.cfg.ResampleEvery == 0 {
			g.resampleWorst()
		}
	}
	if c := g.bestCandidate(); c.Rating > g.best.Rating {
		g.best = c
	}
	slog.Debug("pass generator refined",
		"steps", g.steps,
		"best", g.best.Pass.String(),
		"rating", g.best.Rating,
	)
}

// resampleWorst replaces the lower half of the population with fresh
// random passes so the search does not collapse onto one local optimum.
func (g *Generator) resampleWorst() {
	slices.SortFunc(g.candidates, func(a, b PassWithRating) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
	for i := len(g.candidates) / 2; i < len(g.candidates); i++ {
		g.candidates[i] = g.rate(g.randomPass())
	}
}

func (g *Generator) bestCandidate() PassWithRating {
	best := PassWithRating{Pass: Pass{PasserPoint: g.passerPoint, Type: g.passType}}
	for i, c := range g.candidates {
		if i == 0 || c.Rating > best.Rating {
			best = c
		}
	}
	return best
}

func (g *Generator) randomPass() Pass {
	return Pass{
		PasserPoint:   g.passerPoint,
		ReceiverPoint: g.region.Lerp(g.rng.Float64(), g.rng.Float64()),
		Speed:         geom.Lerp(g.cfg.MinPassSpeed, g.cfg.MaxPassSpeed, g.rng.Float64()),
		Type:          g.passType,
	}
}

const (
	perturbPositionStdDev = 0.3 // metres
	perturbSpeedStdDev    = 0.3 // m/s
)

func (g *Generator) perturb(p Pass) Pass {
	p.ReceiverPoint = g.region.ClampPoint(geom.Point{
		X: p.ReceiverPoint.X + g.rng.NormFloat64()*perturbPositionStdDev,
		Y: p.ReceiverPoint.Y + g.rng.NormFloat64()*perturbPositionStdDev,
	})
	p.Speed = geom.Clamp(p.Speed+g.rng.NormFloat64()*perturbSpeedStdDev, g.cfg.MinPassSpeed, g.cfg.MaxPassSpeed)
	return p
}
