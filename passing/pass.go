// Package passing evaluates and searches for passes between friendly
// robots.
package passing

import (
	"fmt"

	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/geom"
)

// PassType says what the receiver does with the ball on arrival.
type PassType int

const (
	// ReceiveAndDribble: the receiver stops the ball and keeps it.
	ReceiveAndDribble PassType = iota
	// OneTouchShot: the receiver redirects the ball at the enemy goal
	// without stopping it.
	OneTouchShot
)

func (t PassType) String() string {
	switch t {
	case ReceiveAndDribble:
		return "receive_and_dribble"
	case OneTouchShot:
		return "one_touch_shot"
	default:
		return "unknown"
	}
}

// Pass is an immutable proposal to kick the ball from PasserPoint to
// ReceiverPoint at Speed.
type Pass struct {
	PasserPoint   geom.Point `json:"passerPoint"`
	ReceiverPoint geom.Point `json:"receiverPoint"`
	Speed         float64    `json:"speed"` // m/s at the kick
	Type          PassType   `json:"type"`
}

func (p Pass) Length() float64 { return p.PasserPoint.DistanceTo(p.ReceiverPoint) }

// Direction is the unit vector from passer to receiver, or zero for a
// zero-length pass.
func (p Pass) Direction() geom.Vector {
	return p.ReceiverPoint.Minus(p.PasserPoint).Normalize(1)
}

// PasserOrientation is the heading the passer must face to take the kick.
func (p Pass) PasserOrientation() geom.Angle {
	return p.ReceiverPoint.Minus(p.PasserPoint).Orientation()
}

// ReceiverOrientation faces the receiver back along the pass.
func (p Pass) ReceiverOrientation() geom.Angle {
	return p.PasserPoint.Minus(p.ReceiverPoint).Orientation()
}

func (p Pass) TravelTime() float64 {
	return evaluation.BallTravelTime(p.Length(), p.Speed)
}

func (p Pass) String() string {
	return fmt.Sprintf("%s pass %v -> %v @ %.2fm/s", p.Type, p.PasserPoint, p.ReceiverPoint, p.Speed)
}

// PassWithRating pairs a pass with its quality in [0,1]: 1 is a perfect
// pass, 0 is unacceptable. Values are produced by the Generator; plays
// read them but never build their own.
type PassWithRating struct {
	Pass   Pass    `json:"pass"`
	Rating float64 `json:"rating"`
}
