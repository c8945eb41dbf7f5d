package play

import (
	"time"

	"github.com/nstehr/stp/stp-core/geom"
)

// DecayPolicy turns time spent deciding into the minimum pass rating worth
// accepting. MinScore must start at 1, never increase with elapsed time,
// stay within [0,1] and reach 0 by the policy's deadline.
type DecayPolicy interface {
	MinScore(elapsed time.Duration) float64
}

// LinearDecay lowers the bar from 1 to 0 evenly over Max.
type LinearDecay struct {
	Max time.Duration
}

func (d LinearDecay) MinScore(elapsed time.Duration) float64 {
	if d.Max <= 0 {
		return 0
	}
	return geom.Clamp(1-elapsed.Seconds()/d.Max.Seconds(), 0, 1)
}

// DecayFunc adapts a plain function to DecayPolicy.
type DecayFunc func(elapsed time.Duration) float64

func (f DecayFunc) MinScore(elapsed time.Duration) float64 { return f(elapsed) }
