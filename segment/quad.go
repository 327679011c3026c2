package segment

import (
	"fmt"

	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/charmat"
	"github.com/npillmayer/splines/poly"
)

// Quad is a quadratic Bézier segment. It is the only quadratic family with
// a fixed characteristic matrix, so it carries no family tag.
type Quad[T splines.Vec[T]] struct {
	pts [3]T
	pol poly.Quadratic[T]
}

// QuadBezier creates a quadratic Bézier segment from its three hull
// points.
func QuadBezier[T splines.Vec[T]](p0, p1, p2 T) Quad[T] {
	pts := [3]T{p0, p1, p2}
	return Quad[T]{
		pts: pts,
		pol: poly.QuadraticFromBasis(charmat.QuadraticBezierFloat(), pts),
	}
}

// Point returns control point i. Panics for i outside 0..2.
func (q Quad[T]) Point(i int) T {
	if i < 0 || i > 2 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..2", i))
	}
	return q.pts[i]
}

// Points returns all three control points.
func (q Quad[T]) Points() [3]T {
	return q.pts
}

// WithPoint returns a new segment with control point i replaced. Panics
// for i outside 0..2.
func (q Quad[T]) WithPoint(i int, p T) Quad[T] {
	if i < 0 || i > 2 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..2", i))
	}
	pts := q.pts
	pts[i] = p
	return QuadBezier(pts[0], pts[1], pts[2])
}

// Polynomial returns the segment's derived polynomial form.
func (q Quad[T]) Polynomial() poly.Quadratic[T] {
	return q.pol
}

// Eval evaluates the segment at parameter t. Values outside [0,1]
// extrapolate.
func (q Quad[T]) Eval(t float64) T {
	return q.pol.Eval(t)
}

// EvalDerivative evaluates the velocity at t.
func (q Quad[T]) EvalDerivative(t float64) T {
	return q.pol.EvalDerivative(t)
}

// EvalSecondDerivative evaluates the (constant) acceleration.
func (q Quad[T]) EvalSecondDerivative(t float64) T {
	return q.pol.EvalSecondDerivative(t)
}

// Differentiate returns the derivative curve, one degree lower, as a line
// segment.
func (q Quad[T]) Differentiate() Line[T] {
	d := q.pol.Derivative()
	return LineSegment(d.C0, d.C0.Plus(d.C1))
}

// Split cuts the segment at t by De Casteljau's construction. t outside
// [0,1] extrapolates.
func (q Quad[T]) Split(t float64) (Quad[T], Quad[T]) {
	a0 := splines.Lerp(q.pts[0], q.pts[1], t)
	a1 := splines.Lerp(q.pts[1], q.pts[2], t)
	mid := splines.Lerp(a0, a1, t)
	return QuadBezier(q.pts[0], a0, mid), QuadBezier(mid, a1, q.pts[2])
}

// Equal compares two segments structurally over their control points.
func (q Quad[T]) Equal(o Quad[T]) bool {
	for i := 0; i < 3; i++ {
		d := q.pts[i].Minus(o.pts[i])
		if d.Dot(d) != 0 {
			return false
		}
	}
	return true
}

// LerpQuad blends two quadratic segments by interpolating their control
// points component-wise.
func LerpQuad[T splines.Vec[T]](a, b Quad[T], t float64) Quad[T] {
	return QuadBezier(
		splines.Lerp(a.pts[0], b.pts[0], t),
		splines.Lerp(a.pts[1], b.pts[1], t),
		splines.Lerp(a.pts[2], b.pts[2], t),
	)
}

// === Line ==================================================================

// Line is a linear segment, the degree-1 Bézier. It shows up as the
// derivative of a quadratic segment.
type Line[T splines.Vec[T]] struct {
	pts [2]T
}

// LineSegment creates a line segment between two points.
func LineSegment[T splines.Vec[T]](p0, p1 T) Line[T] {
	return Line[T]{pts: [2]T{p0, p1}}
}

// Point returns end point i. Panics for i outside 0..1.
func (l Line[T]) Point(i int) T {
	if i < 0 || i > 1 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..1", i))
	}
	return l.pts[i]
}

// Eval evaluates the segment at parameter t (plain linear interpolation,
// extrapolating outside [0,1]).
func (l Line[T]) Eval(t float64) T {
	return splines.Lerp(l.pts[0], l.pts[1], t)
}

// EvalDerivative evaluates the constant velocity.
func (l Line[T]) EvalDerivative(t float64) T {
	return l.pts[1].Minus(l.pts[0])
}
