package geom

import (
	"fmt"
	"math"
)

// Point is a location on the field in metres. The origin is the centre of
// the field and +x points at the enemy goal.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector is a displacement between two points.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(v Vector) Point   { return Point{p.X + v.X, p.Y + v.Y} }
func (p Point) Sub(v Vector) Point   { return Point{p.X - v.X, p.Y - v.Y} }
func (p Point) Minus(o Point) Vector { return Vector{p.X - o.X, p.Y - o.Y} }

func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// IsFinite reports whether both coordinates are real numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string { return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y) }

func (v Vector) Add(o Vector) Vector    { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector    { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }
func (v Vector) Dot(o Vector) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vector) Length() float64        { return math.Hypot(v.X, v.Y) }
func (v Vector) Orientation() Angle     { return Angle(math.Atan2(v.Y, v.X)) }
func (v Vector) Perpendicular() Vector  { return Vector{-v.Y, v.X} }

// Normalize returns v scaled to length l. The zero vector stays zero so
// callers never divide by zero on degenerate input.
func (v Vector) Normalize(l float64) Vector {
	n := v.Length()
	if n < 1e-9 {
		return Vector{}
	}
	return v.Scale(l / n)
}

func (v Vector) String() string { return fmt.Sprintf("<%.3f, %.3f>", v.X, v.Y) }

// Segment is the straight line between Start and End.
type Segment struct {
	Start Point
	End   Point
}

// DistanceToPoint returns the shortest distance from p to any point on s.
func (s Segment) DistanceToPoint(p Point) float64 {
	return p.DistanceTo(s.ClosestPoint(p))
}

// ClosestPoint projects p onto s, clamped to the segment ends.
func (s Segment) ClosestPoint(p Point) Point {
	d := s.End.Minus(s.Start)
	l2 := d.Dot(d)
	if l2 < 1e-12 {
		return s.Start
	}
	t := clamp(p.Minus(s.Start).Dot(d)/l2, 0, 1)
	return s.Start.Add(d.Scale(t))
}

func (s Segment) Length() float64 { return s.Start.DistanceTo(s.End) }
