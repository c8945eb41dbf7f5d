package geom

import "math"

// Rectangle is an axis-aligned box. NewRectangle accepts any two opposite
// corners; Min and Max are kept normalised.
type Rectangle struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func NewRectangle(a, b Point) Rectangle {
	return Rectangle{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rectangle) XLength() float64 { return r.Max.X - r.Min.X }
func (r Rectangle) YLength() float64 { return r.Max.Y - r.Min.Y }
func (r Rectangle) Area() float64    { return r.XLength() * r.YLength() }

func (r Rectangle) Centre() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Degenerate reports whether the rectangle has (near) zero area.
func (r Rectangle) Degenerate() bool {
	return r.XLength() < 1e-6 || r.YLength() < 1e-6
}

// Contains includes the boundary.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPoint returns the point inside r nearest to p.
func (r Rectangle) ClampPoint(p Point) Point {
	return Point{clamp(p.X, r.Min.X, r.Max.X), clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// Lerp maps (u, v) in [0,1]² onto the rectangle.
func (r Rectangle) Lerp(u, v float64) Point {
	return Point{Lerp(r.Min.X, r.Max.X, u), Lerp(r.Min.Y, r.Max.Y, v)}
}

// Expand grows the rectangle by d on every side. A negative d shrinks it,
// collapsing to the centre rather than inverting.
func (r Rectangle) Expand(d float64) Rectangle {
	c := r.Centre()
	hx := math.Max(r.XLength()/2+d, 0)
	hy := math.Max(r.YLength()/2+d, 0)
	return Rectangle{Min: Point{c.X - hx, c.Y - hy}, Max: Point{c.X + hx, c.Y + hy}}
}
