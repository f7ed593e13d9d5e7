package symmetry

import (
	"slices"

	"github.com/mocassin-sim/mocassin-go/pkg/model"
)

// Operation is an affine symmetry operation in fractional coordinates.
type Operation struct {
	// Rotation is the row-major 3x3 matrix part.
	Rotation    [9]float64
	Translation model.Vector3
}

// Identity is the identity operation.
var Identity = Operation{Rotation: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}

// Apply transforms v.
func (o Operation) Apply(v model.Vector3) model.Vector3 {
	r := o.Rotation
	return model.Vector3{
		A: r[0]*v.A + r[1]*v.B + r[2]*v.C + o.Translation.A,
		B: r[3]*v.A + r[4]*v.B + r[5]*v.C + o.Translation.B,
		C: r[6]*v.A + r[7]*v.B + r[8]*v.C + o.Translation.C,
	}
}

// PointOperationGroup holds the point symmetry of an origin together with
// a position sequence around it.
type PointOperationGroup struct {
	Origin   model.Vector3
	Sequence []model.Vector3
	// Operations are all point operations of the origin.
	Operations []Operation
	// UniqueProjectionOrders lists the distinct slot permutations produced
	// by the operations that project the sequence onto itself. Entry i of
	// an order names the source slot of slot i.
	UniqueProjectionOrders [][]int
}

// NonIdentityOrders returns the projection orders that are not the identity.
func (g *PointOperationGroup) NonIdentityOrders() [][]int {
	out := make([][]int, 0, len(g.UniqueProjectionOrders))
	for _, order := range g.UniqueProjectionOrders {
		if !IsIdentityOrder(order) {
			out = append(out, order)
		}
	}
	return out
}

// HasPermutationMultiplicity reports whether the sequence can be reordered
// onto itself in more than one way.
func (g *PointOperationGroup) HasPermutationMultiplicity() bool {
	return len(g.NonIdentityOrders()) > 0
}

// Order returns the number of distinct projection orders including the identity.
func (g *PointOperationGroup) Order() int {
	return len(g.NonIdentityOrders()) + 1
}

// TransformSequence applies op to every vector of the sequence.
func (g *PointOperationGroup) TransformSequence(op Operation) []model.Vector3 {
	out := make([]model.Vector3, len(g.Sequence))
	for i, v := range g.Sequence {
		out[i] = op.Apply(v)
	}
	return out
}

// IsIdentityOrder reports whether order maps every slot onto itself.
func IsIdentityOrder(order []int) bool {
	for i, v := range order {
		if v != i {
			return false
		}
	}
	return true
}

// IdentityGroup returns a group without any non-trivial projection order.
func IdentityGroup(origin model.Vector3, sequence []model.Vector3) *PointOperationGroup {
	order := make([]int, len(sequence))
	for i := range order {
		order[i] = i
	}
	return &PointOperationGroup{
		Origin:                 origin,
		Sequence:               slices.Clone(sequence),
		Operations:             []Operation{Identity},
		UniqueProjectionOrders: [][]int{order},
	}
}
