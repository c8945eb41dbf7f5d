package tactic

import (
	"github.com/nstehr/stp/stp-core/geom"
	"github.com/nstehr/stp/stp-core/model"
	"github.com/nstehr/stp/stp-core/passing"
)

// CherryPick roams a region looking for the spot a pass from the ball
// would score best, and keeps moving toward it. It never finishes.
type CherryPick struct {
	base
	region    geom.Rectangle
	generator *passing.Generator
}

func NewCherryPick(w model.World, region geom.Rectangle, cfg passing.Config) *CherryPick {
	g := passing.NewGenerator(w, w.Ball.Position, passing.ReceiveAndDribble, cfg)
	g.SetTargetRegion(region)
	return &CherryPick{base: newBase("cherry_pick"), region: region, generator: g}
}

func (c *CherryPick) UpdateControlParams(region geom.Rectangle) {
	c.region = region
	c.generator.SetTargetRegion(region)
}

func (c *CherryPick) Region() geom.Rectangle { return c.region }

func (c *CherryPick) Done() bool { return false }

func (c *CherryPick) Step(w model.World) Intent {
	c.generator.SetWorld(w)
	c.generator.SetPasserPoint(w.Ball.Position)
	if _, ok := c.robotIn(w); !ok {
		return stop()
	}
	spot := c.generator.BestPassSoFar().Pass.ReceiverPoint
	return moveTo(spot, w.Ball.Position.Minus(spot).Orientation(), 0)
}
