package model

import "github.com/nstehr/stp/stp-core/geom"

// Field describes the playing surface. All measurements are in metres and
// the origin is the centre point; the enemy goal is on +x.
type Field struct {
	XLength            float64 `json:"xLength"`            // goal line to goal line
	YLength            float64 `json:"yLength"`            // touch line to touch line
	DefenseAreaXLength float64 `json:"defenseAreaXLength"` // depth from the goal line
	DefenseAreaYLength float64 `json:"defenseAreaYLength"` // width along the goal line
	GoalYLength        float64 `json:"goalYLength"`
	Boundary           float64 `json:"boundary"` // run-off outside the field lines
}

// DefaultField returns SSL Division B dimensions.
func DefaultField() Field {
	return Field{
		XLength:            9.0,
		YLength:            6.0,
		DefenseAreaXLength: 1.0,
		DefenseAreaYLength: 2.0,
		GoalYLength:        1.0,
		Boundary:           0.3,
	}
}

// Valid reports whether the field has a usable playing area.
func (f Field) Valid() bool {
	return f.XLength > 0 && f.YLength > 0 && f.DefenseAreaXLength > 0 && f.DefenseAreaYLength > 0
}

func (f Field) CenterPoint() geom.Point { return geom.Point{} }

func (f Field) EnemyCornerPos() geom.Point    { return geom.Point{X: f.XLength / 2, Y: f.YLength / 2} }
func (f Field) EnemyCornerNeg() geom.Point    { return geom.Point{X: f.XLength / 2, Y: -f.YLength / 2} }
func (f Field) FriendlyCornerPos() geom.Point { return geom.Point{X: -f.XLength / 2, Y: f.YLength / 2} }
func (f Field) FriendlyCornerNeg() geom.Point { return geom.Point{X: -f.XLength / 2, Y: -f.YLength / 2} }

func (f Field) EnemyGoalCenter() geom.Point    { return geom.Point{X: f.XLength / 2} }
func (f Field) FriendlyGoalCenter() geom.Point { return geom.Point{X: -f.XLength / 2} }

// EnemyGoalPostPos and EnemyGoalPostNeg are the inside edges of the enemy
// goal mouth.
func (f Field) EnemyGoalPostPos() geom.Point {
	return geom.Point{X: f.XLength / 2, Y: f.GoalYLength / 2}
}

func (f Field) EnemyGoalPostNeg() geom.Point {
	return geom.Point{X: f.XLength / 2, Y: -f.GoalYLength / 2}
}

func (f Field) EnemyDefenseArea() geom.Rectangle {
	return geom.NewRectangle(
		geom.Point{X: f.XLength/2 - f.DefenseAreaXLength, Y: -f.DefenseAreaYLength / 2},
		geom.Point{X: f.XLength / 2, Y: f.DefenseAreaYLength / 2},
	)
}

func (f Field) FriendlyDefenseArea() geom.Rectangle {
	return geom.NewRectangle(
		geom.Point{X: -f.XLength / 2, Y: -f.DefenseAreaYLength / 2},
		geom.Point{X: -f.XLength/2 + f.DefenseAreaXLength, Y: f.DefenseAreaYLength / 2},
	)
}

// FieldLines is the in-bounds area.
func (f Field) FieldLines() geom.Rectangle {
	return geom.NewRectangle(f.FriendlyCornerNeg(), f.EnemyCornerPos())
}

// Contains reports whether p is inside the field lines.
func (f Field) Contains(p geom.Point) bool {
	return f.FieldLines().Contains(p)
}
