/*
Package segment provides uniform and non-uniform spline segments of the
classic cubic families, plus quadratic and arbitrary-degree Bézier
segments.

Segments are immutable value types: the polynomial form of a segment is
derived from its control points at construction time by multiplying the
family's characteristic matrix against the control column, and "mutating" a
control point returns a new segment with a freshly derived polynomial.
There is no cache to invalidate and segments are safe to share across
goroutines.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package segment

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/charmat"
	"github.com/npillmayer/splines/poly"
)

// tracer writes to trace with key 'segments'
func tracer() tracing.Trace {
	return tracing.Select("segments")
}

var (
	// ErrFamilyMismatch indicates a blend of segments from different
	// families.
	ErrFamilyMismatch = errors.New("segment: families do not match")
	// ErrNotBezier indicates a Bézier-only operation (Split, Slerp) on a
	// segment of another family.
	ErrNotBezier = errors.New("segment: operation requires a Bézier segment")
	// ErrKnotOrder indicates non-increasing knots for a non-uniform
	// segment. Colliding knots would make the derived characteristic
	// matrix singular.
	ErrKnotOrder = errors.New("segment: knots must be strictly increasing")
	// ErrTooFewPoints indicates a generalized Bézier with fewer than 2
	// control points.
	ErrTooFewPoints = errors.New("segment: at least 2 control points required")
)

// Cubic is a uniform cubic spline segment of one of the four classic
// families. The four control values are hull points, except for the
// Hermite family where they are point, tangent, point, tangent.
type Cubic[T splines.Vec[T]] struct {
	fam charmat.Family
	pts [4]T
	pol poly.Cubic[T]
}

func newCubic[T splines.Vec[T]](fam charmat.Family, pts [4]T) Cubic[T] {
	return Cubic[T]{
		fam: fam,
		pts: pts,
		pol: poly.CubicFromBasis(charmat.CharacteristicFloat(fam), pts),
	}
}

// Bezier creates a cubic Bézier segment from its four hull points.
func Bezier[T splines.Vec[T]](p0, p1, p2, p3 T) Cubic[T] {
	return newCubic(charmat.Bezier, [4]T{p0, p1, p2, p3})
}

// Hermite creates a cubic Hermite segment from two points and their
// tangent vectors.
func Hermite[T splines.Vec[T]](p0, m0, p1, m1 T) Cubic[T] {
	return newCubic(charmat.Hermite, [4]T{p0, m0, p1, m1})
}

// CatmullRom creates a uniform Catmull-Rom segment. The curve runs from p1
// to p2; p0 and p3 shape the tangents and are not interpolated.
func CatmullRom[T splines.Vec[T]](p0, p1, p2, p3 T) Cubic[T] {
	return newCubic(charmat.CatmullRom, [4]T{p0, p1, p2, p3})
}

// UniformBSpline creates a uniform cubic B-spline segment. None of the
// hull points are interpolated in general.
func UniformBSpline[T splines.Vec[T]](p0, p1, p2, p3 T) Cubic[T] {
	return newCubic(charmat.UniformBSpline, [4]T{p0, p1, p2, p3})
}

// BezierFromPolynomial reconstructs the Bézier hull of a cubic polynomial
// segment (the inverse of the Bézier characteristic matrix, applied to the
// coefficient column).
func BezierFromPolynomial[T splines.Vec[T]](p poly.Cubic[T]) Cubic[T] {
	b0 := p.C0
	b1 := p.C0.Plus(p.C1.Scaled(1.0 / 3.0))
	b2 := p.C0.Plus(p.C1.Scaled(2.0 / 3.0)).Plus(p.C2.Scaled(1.0 / 3.0))
	b3 := p.C0.Plus(p.C1).Plus(p.C2).Plus(p.C3)
	return Bezier(b0, b1, b2, b3)
}

// Family returns the segment's spline family.
func (c Cubic[T]) Family() charmat.Family {
	return c.fam
}

// Point returns control value i. Panics for i outside 0..3; an index out
// of range is a caller bug, surfaced immediately.
func (c Cubic[T]) Point(i int) T {
	if i < 0 || i > 3 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..3", i))
	}
	return c.pts[i]
}

// Points returns all four control values.
func (c Cubic[T]) Points() [4]T {
	return c.pts
}

// WithPoint returns a new segment with control value i replaced. The
// polynomial is re-derived; the receiver is unchanged. Panics for i
// outside 0..3.
func (c Cubic[T]) WithPoint(i int, p T) Cubic[T] {
	if i < 0 || i > 3 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..3", i))
	}
	pts := c.pts
	pts[i] = p
	return newCubic(c.fam, pts)
}

// Polynomial returns the segment's derived polynomial form.
func (c Cubic[T]) Polynomial() poly.Cubic[T] {
	return c.pol
}

// Eval evaluates the segment at parameter t. The segment's natural domain
// is [0,1]; values outside extrapolate.
func (c Cubic[T]) Eval(t float64) T {
	return c.pol.Eval(t)
}

// EvalDerivative evaluates the velocity (first derivative) at t.
func (c Cubic[T]) EvalDerivative(t float64) T {
	return c.pol.EvalDerivative(t)
}

// EvalSecondDerivative evaluates the acceleration at t.
func (c Cubic[T]) EvalSecondDerivative(t float64) T {
	return c.pol.EvalSecondDerivative(t)
}

// EvalThirdDerivative evaluates the (constant) jerk.
func (c Cubic[T]) EvalThirdDerivative(t float64) T {
	return c.pol.EvalThirdDerivative(t)
}

// Differentiate returns the segment's derivative curve, one degree lower,
// as a quadratic Bézier.
func (c Cubic[T]) Differentiate() Quad[T] {
	d := c.pol.Derivative()
	q0 := d.C0
	q1 := d.C0.Plus(d.C1.Scaled(0.5))
	q2 := d.C0.Plus(d.C1).Plus(d.C2)
	return QuadBezier(q0, q1, q2)
}

// Convert re-expresses the segment in another cubic family, tracing the
// identical curve. Converting to the segment's own family is a no-op.
func (c Cubic[T]) Convert(to charmat.Family) Cubic[T] {
	if to == c.fam {
		return c
	}
	m := charmat.ConversionFloat(c.fam, to)
	var pts [4]T
	for i := 0; i < 4; i++ {
		pts[i] = c.pts[0].Scaled(m[i][0]).
			Plus(c.pts[1].Scaled(m[i][1])).
			Plus(c.pts[2].Scaled(m[i][2])).
			Plus(c.pts[3].Scaled(m[i][3]))
	}
	return newCubic(to, pts)
}

// ToBezier re-expresses the segment as a cubic Bézier.
func (c Cubic[T]) ToBezier() Cubic[T] { return c.Convert(charmat.Bezier) }

// ToHermite re-expresses the segment in Hermite form.
func (c Cubic[T]) ToHermite() Cubic[T] { return c.Convert(charmat.Hermite) }

// ToCatmullRom re-expresses the segment in Catmull-Rom form.
func (c Cubic[T]) ToCatmullRom() Cubic[T] { return c.Convert(charmat.CatmullRom) }

// ToBSpline re-expresses the segment in uniform B-spline form.
func (c Cubic[T]) ToBSpline() Cubic[T] { return c.Convert(charmat.UniformBSpline) }

// Split cuts a Bézier segment at t by De Casteljau's construction. The two
// halves concatenate to the original curve exactly; the pre-segment covers
// global [0,t], the post-segment [t,1], each reparametrized to [0,1].
// t outside [0,1] is algebraically valid and extrapolates; only the
// "bounded segment" reading degrades. Splitting is limited to the Bézier
// family, whose sub-segments stay within the family; other families yield
// ErrNotBezier (convert first).
func (c Cubic[T]) Split(t float64) (Cubic[T], Cubic[T], error) {
	if c.fam != charmat.Bezier {
		tracer().Debugf("refusing to split %s segment", c.fam)
		return Cubic[T]{}, Cubic[T]{}, ErrNotBezier
	}
	p := c.pts
	a0 := splines.Lerp(p[0], p[1], t)
	a1 := splines.Lerp(p[1], p[2], t)
	a2 := splines.Lerp(p[2], p[3], t)
	b0 := splines.Lerp(a0, a1, t)
	b1 := splines.Lerp(a1, a2, t)
	mid := splines.Lerp(b0, b1, t)
	pre := Bezier(p[0], a0, b0, mid)
	post := Bezier(mid, b1, a2, p[3])
	return pre, post, nil
}

// Equal compares two segments structurally: same family and component-wise
// equal control points. The derived polynomial does not participate.
func (c Cubic[T]) Equal(o Cubic[T]) bool {
	if c.fam != o.fam {
		return false
	}
	for i := 0; i < 4; i++ {
		d := c.pts[i].Minus(o.pts[i])
		if d.Dot(d) != 0 {
			return false
		}
	}
	return true
}

// Mapped applies f to every control value and returns the resulting
// segment of the same family. For the Hermite family note that control
// values 1 and 3 are tangents: f must be linear (no translation part) for
// the mapped segment to mean "the mapped curve".
func (c Cubic[T]) Mapped(f func(T) T) Cubic[T] {
	var pts [4]T
	for i, p := range c.pts {
		pts[i] = f(p)
	}
	return newCubic(c.fam, pts)
}

// Lerp blends two segments of the same family by interpolating their
// control points component-wise.
func Lerp[T splines.Vec[T]](a, b Cubic[T], t float64) (Cubic[T], error) {
	if a.fam != b.fam {
		return Cubic[T]{}, fmt.Errorf("%w: %s vs %s", ErrFamilyMismatch, a.fam, b.fam)
	}
	var pts [4]T
	for i := 0; i < 4; i++ {
		pts[i] = splines.Lerp(a.pts[i], b.pts[i], t)
	}
	return newCubic(a.fam, pts), nil
}

// Slerp blends two Bézier segments: endpoints interpolate linearly while
// the endpoint-to-tangent-point vectors interpolate spherically. This
// keeps tangent directions sweeping evenly, which plain Lerp does not.
func Slerp[T splines.Vec[T]](a, b Cubic[T], t float64) (Cubic[T], error) {
	if a.fam != charmat.Bezier || b.fam != charmat.Bezier {
		return Cubic[T]{}, ErrNotBezier
	}
	p0 := splines.Lerp(a.pts[0], b.pts[0], t)
	p3 := splines.Lerp(a.pts[3], b.pts[3], t)
	t0 := splines.Slerp(a.pts[1].Minus(a.pts[0]), b.pts[1].Minus(b.pts[0]), t)
	t3 := splines.Slerp(a.pts[2].Minus(a.pts[3]), b.pts[2].Minus(b.pts[3]), t)
	return Bezier(p0, p0.Plus(t0), p3.Plus(t3), p3), nil
}
