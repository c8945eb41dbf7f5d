package geom

import "math"

// Angle is measured in radians, counter-clockwise from +x.
type Angle float64

func Degrees(d float64) Angle { return Angle(d * math.Pi / 180) }

func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Clamp wraps a into (-π, π].
func (a Angle) Clamp() Angle {
	r := math.Remainder(float64(a), 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// MinDiff is the absolute smallest rotation between a and b, in [0, π].
func (a Angle) MinDiff(b Angle) Angle {
	return Angle(math.Abs(float64((a - b).Clamp())))
}
