package geom

import "math"

// Clamp restricts v to [min, max].
func Clamp(v, min, max float64) float64 { return clamp(v, min, max) }

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp linearly interpolates between min and max by t (0–1).
func Lerp(min, max, t float64) float64 {
	return min + (max-min)*t
}

// Sigmoid is a logistic step centred on offset. width is the distance over
// which the output climbs from ~0.018 to ~0.982; a non-positive width gives
// a hard step.
func Sigmoid(v, offset, width float64) float64 {
	if width <= 0 {
		if v >= offset {
			return 1
		}
		return 0
	}
	const k = 8.0 // offset ± width/2 lands on 0.018 and 0.982
	return 1 / (1 + math.Exp(-k*(v-offset)/width))
}
