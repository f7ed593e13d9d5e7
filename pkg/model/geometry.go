package model

import (
	"fmt"
	"math"
)

// Vector3 is a fractional vector in unit cell coordinates.
type Vector3 struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{A: v.A - o.A, B: v.B - o.B, C: v.C - o.C}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{A: v.A + o.A, B: v.B + o.B, C: v.C + o.C}
}

// Length returns the Euclidean norm of the fractional components.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.A*v.A + v.B*v.B + v.C*v.C)
}

// String formats the vector for keys and messages.
func (v Vector3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.A, v.B, v.C)
}

// Vector4 is a crystal vector: unit cell offset plus position index.
type Vector4 struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	C int `yaml:"c"`
	P int `yaml:"p"`
}

// Sub returns the cell offset difference; P is taken from v.
func (v Vector4) Sub(o Vector4) Vector4 {
	return Vector4{A: v.A - o.A, B: v.B - o.B, C: v.C - o.C, P: v.P}
}

// UnitCellPosition is a position of the unit cell with its allowed occupation.
type UnitCellPosition struct {
	Index      int
	Vector     Vector3
	Occupation ParticleSet
	Unstable   bool
}
