package segment

import (
	"fmt"

	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/charmat"
	"github.com/npillmayer/splines/poly"
)

// For non-uniform segments the characteristic matrix is no longer a fixed
// constant from the charmat registry: it depends on the segment's knot
// values and is re-derived at construction. Strictly increasing knots are
// a hard precondition: colliding knots make the derived matrix singular,
// which is why construction fails fast with ErrKnotOrder instead.

// NUHermite is a cubic Hermite segment over an explicit knot interval
// [t0,t1] instead of the unit interval. Tangents are velocities in the
// global parameter: evaluating the derivative at t yields v0 at t0 and v1
// at t1 regardless of the interval length.
type NUHermite[T splines.Vec[T]] struct {
	p0, v0, p1, v1 T
	t0, t1         float64
	pol            poly.Cubic[T] // in the local parameter u = (t-t0)/(t1-t0)
}

// NewNUHermite creates a non-uniform Hermite segment. t1 must be strictly
// greater than t0.
func NewNUHermite[T splines.Vec[T]](p0, v0, p1, v1 T, t0, t1 float64) (NUHermite[T], error) {
	if !(t1 > t0) {
		return NUHermite[T]{}, fmt.Errorf("%w: [%g,%g]", ErrKnotOrder, t0, t1)
	}
	dt := t1 - t0
	// Local tangents scale with the interval length; differentiation
	// divides the scale back out.
	pol := poly.CubicFromBasis(charmat.CharacteristicFloat(charmat.Hermite),
		[4]T{p0, v0.Scaled(dt), p1, v1.Scaled(dt)})
	return NUHermite[T]{p0: p0, v0: v0, p1: p1, v1: v1, t0: t0, t1: t1, pol: pol}, nil
}

// Knots returns the segment's parameter interval.
func (h NUHermite[T]) Knots() (t0, t1 float64) {
	return h.t0, h.t1
}

// Eval evaluates the segment at global parameter t in [t0,t1]. Values
// outside extrapolate.
func (h NUHermite[T]) Eval(t float64) T {
	return h.pol.Eval((t - h.t0) / (h.t1 - h.t0))
}

// EvalDerivative evaluates the velocity with respect to the global
// parameter.
func (h NUHermite[T]) EvalDerivative(t float64) T {
	dt := h.t1 - h.t0
	return h.pol.EvalDerivative((t - h.t0) / dt).Scaled(1 / dt)
}

// EvalSecondDerivative evaluates the acceleration with respect to the
// global parameter.
func (h NUHermite[T]) EvalSecondDerivative(t float64) T {
	dt := h.t1 - h.t0
	return h.pol.EvalSecondDerivative((t-h.t0)/dt).Scaled(1 / (dt * dt))
}

// Normalized returns the equivalent uniform Hermite segment over [0,1],
// with tangents scaled to the unit interval.
func (h NUHermite[T]) Normalized() Cubic[T] {
	dt := h.t1 - h.t0
	return Hermite(h.p0, h.v0.Scaled(dt), h.p1, h.v1.Scaled(dt))
}

// === Non-uniform Catmull-Rom ===============================================

// NUCatmullRom is a Catmull-Rom segment over unevenly spaced knots
// (k0,k1,k2,k3): the curve runs from p1 at k1 to p2 at k2, with p0/p3
// shaping the tangents. Chordal and centripetal parametrizations are
// obtained by choosing knot spacings from chord lengths.
type NUCatmullRom[T splines.Vec[T]] struct {
	pts   [4]T
	knots [4]float64
	pol   poly.Cubic[T] // in the local parameter u = (t-k1)/(k2-k1)
}

// NewNUCatmullRom creates a non-uniform Catmull-Rom segment. Knots must be
// strictly increasing.
func NewNUCatmullRom[T splines.Vec[T]](p0, p1, p2, p3 T, k0, k1, k2, k3 float64) (NUCatmullRom[T], error) {
	if !(k0 < k1 && k1 < k2 && k2 < k3) {
		return NUCatmullRom[T]{}, fmt.Errorf("%w: (%g,%g,%g,%g)", ErrKnotOrder, k0, k1, k2, k3)
	}
	m := nuCatRomCharMatrix(k0, k1, k2, k3)
	pts := [4]T{p0, p1, p2, p3}
	return NUCatmullRom[T]{
		pts:   pts,
		knots: [4]float64{k0, k1, k2, k3},
		pol:   poly.CubicFromBasis(m, pts),
	}, nil
}

// nuCatRomCharMatrix derives the knot-dependent characteristic matrix: the
// finite-difference tangent rows for the interior knots, pushed through
// the Hermite basis. Everything is products and differences of the four
// knot scalars.
func nuCatRomCharMatrix(k0, k1, k2, k3 float64) [4][4]float64 {
	var a0, a1, a2 float64 // row for the tangent at p1
	var b1, b2, b3 float64 // row for the tangent at p2
	if k1 == 0 && k2 == 1 {
		// Unit-interval shortcut: the interior span is 1, which removes
		// the normalizing divisions of the general formula.
		d0 := -k0
		d2 := k3 - 1
		a0 = -1/d0 + 1/(d0+1)
		a1 = 1/d0 - 1
		a2 = 1 - 1/(d0+1)
		b1 = -1 + 1/(1+d2)
		b2 = 1 - 1/d2
		b3 = -1/(1+d2) + 1/d2
	} else {
		d0 := k1 - k0
		d1 := k2 - k1
		d2 := k3 - k2
		a0 = d1 * (-1/d0 + 1/(d0+d1))
		a1 = d1 * (1/d0 - 1/d1)
		a2 = d1 * (-1/(d0+d1) + 1/d1)
		b1 = d1 * (-1/d1 + 1/(d1+d2))
		b2 = d1 * (1/d1 - 1/d2)
		b3 = d1 * (-1/(d1+d2) + 1/d2)
	}
	// Rows map (p0,p1,p2,p3) to the Hermite control column
	// (p1, m1, p2, m2).
	tangents := [4][4]float64{
		{0, 1, 0, 0},
		{a0, a1, a2, 0},
		{0, 0, 1, 0},
		{0, b1, b2, b3},
	}
	h := charmat.CharacteristicFloat(charmat.Hermite)
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var acc float64
			for k := 0; k < 4; k++ {
				acc += h[i][k] * tangents[k][j]
			}
			m[i][j] = acc
		}
	}
	return m
}

// Knots returns the segment's four knot values.
func (c NUCatmullRom[T]) Knots() [4]float64 {
	return c.knots
}

// Point returns control point i. Panics for i outside 0..3.
func (c NUCatmullRom[T]) Point(i int) T {
	if i < 0 || i > 3 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..3", i))
	}
	return c.pts[i]
}

// WithPoint returns a new segment with control point i replaced; the
// characteristic matrix is knot-dependent only, so only the polynomial is
// re-derived. Panics for i outside 0..3.
func (c NUCatmullRom[T]) WithPoint(i int, p T) NUCatmullRom[T] {
	if i < 0 || i > 3 {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..3", i))
	}
	pts := c.pts
	pts[i] = p
	seg, err := NewNUCatmullRom(pts[0], pts[1], pts[2], pts[3],
		c.knots[0], c.knots[1], c.knots[2], c.knots[3])
	if err != nil {
		panic(err) // knots unchanged and were valid
	}
	return seg
}

// Eval evaluates the segment at global parameter t in [k1,k2]. Values
// outside extrapolate.
func (c NUCatmullRom[T]) Eval(t float64) T {
	return c.pol.Eval((t - c.knots[1]) / (c.knots[2] - c.knots[1]))
}

// EvalDerivative evaluates the velocity with respect to the global
// parameter.
func (c NUCatmullRom[T]) EvalDerivative(t float64) T {
	d1 := c.knots[2] - c.knots[1]
	return c.pol.EvalDerivative((t - c.knots[1]) / d1).Scaled(1 / d1)
}

// ToBezier returns the equivalent cubic Bézier segment over [0,1]
// (reparametrized to the segment's interior knot span).
func (c NUCatmullRom[T]) ToBezier() Cubic[T] {
	return BezierFromPolynomial(c.pol)
}
