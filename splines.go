/*
Package splines provides the shared numeric and vector vocabulary for a
library of parametric curve and spline primitives.

The heavy lifting (characteristic matrices, polynomial segments, uniform
and non-uniform spline families, generalized B-splines and NURBS) lives in
the subpackages rational, poly, segment and nurbs. This root package holds
what all of them need: epsilon-based float predicates, a 2D pair type and a
3D triple type, and a small generic vector constraint which lets one curve
implementation serve every dimension.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package splines

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines'
func tracer() tracing.Trace {
	return tracing.Select("splines")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Generic Vector Constraint =============================================

// Vec is the constraint every curve type in this module is generic over.
// Pair (2D) and Triple (3D) satisfy it; clients may bring their own point
// types. Implementations are expected to be immutable value types.
type Vec[T any] interface {
	Plus(T) T
	Minus(T) T
	Scaled(a float64) T
	Dot(T) float64
}

// Lerp interpolates linearly between two vectors. t is not clamped:
// values outside [0,1] extrapolate.
func Lerp[T Vec[T]](a, b T, t float64) T {
	return a.Plus(b.Minus(a).Scaled(t))
}

// Slerp interpolates spherically between two vectors, i.e. the angle
// between a and the result grows linearly with t while the length blends
// linearly. For (near-)parallel or (near-)zero vectors Slerp degrades to
// Lerp, which is the correct limit.
func Slerp[T Vec[T]](a, b T, t float64) T {
	la := math.Sqrt(a.Dot(a))
	lb := math.Sqrt(b.Dot(b))
	if Is0(la) || Is0(lb) {
		return Lerp(a, b, t)
	}
	cos := a.Dot(b) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	theta := math.Acos(cos)
	if Is0(theta) || Is0(math.Pi-theta) {
		return Lerp(a, b, t)
	}
	s := math.Sin(theta)
	return a.Scaled(math.Sin((1-t)*theta) / s).Plus(b.Scaled(math.Sin(t*theta) / s))
}

// === Pair Data Type ========================================================

// Pair is a 2D point / vector, backed by a complex number.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	px := real(p.C())
	py := imag(p.C())
	return px, py
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	p = P(Zap(p.X()), Zap(p.Y()))
	return p
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Plus returns the vector sum p + v.
func (p Pair) Plus(v Pair) Pair {
	return p + v
}

// Minus returns the vector difference p - v.
func (p Pair) Minus(v Pair) Pair {
	return p - v
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Dot returns the dot product of two pairs.
func (p Pair) Dot(v Pair) float64 {
	return p.X()*v.X() + p.Y()*v.Y()
}

// XScaled returns a new pair x-scaled by factor a.
func (p Pair) XScaled(a float64) Pair {
	return P(p.X()*a, p.Y())
}

// YScaled returns a new pair y-scaled by factor a.
func (p Pair) YScaled(a float64) Pair {
	return P(p.X(), p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	T := Translation(v)
	return T.Transform(p).Zap()
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	T := Rotation(theta)
	return T.Transform(p).Zap()
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return p.Shifted(-v).Rotated(theta).Shifted(v).Zap()
}

// === Triple Data Type ======================================================

// Triple is a 3D point / vector.
type Triple struct {
	XC, YC, ZC float64
}

// P3 is a quick notation for contructing a triple from floats.
func P3(x, y, z float64) Triple {
	return Triple{x, y, z}
}

// Pretty Stringer for triples.
func (v Triple) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.XC, v.YC, v.ZC)
}

// X is the x-part of a triple.
func (v Triple) X() float64 { return v.XC }

// Y is the y-part of a triple.
func (v Triple) Y() float64 { return v.YC }

// Z is the z-part of a triple.
func (v Triple) Z() float64 { return v.ZC }

// Plus returns the vector sum v + w.
func (v Triple) Plus(w Triple) Triple {
	return Triple{v.XC + w.XC, v.YC + w.YC, v.ZC + w.ZC}
}

// Minus returns the vector difference v - w.
func (v Triple) Minus(w Triple) Triple {
	return Triple{v.XC - w.XC, v.YC - w.YC, v.ZC - w.ZC}
}

// Scaled returns a new triple scaled by factor a.
func (v Triple) Scaled(a float64) Triple {
	return Triple{v.XC * a, v.YC * a, v.ZC * a}
}

// Dot returns the dot product of two triples.
func (v Triple) Dot(w Triple) float64 {
	return v.XC*w.XC + v.YC*w.YC + v.ZC*w.ZC
}

// Zap rounds all parts to Epsilon.
func (v Triple) Zap() Triple {
	return Triple{Zap(v.XC), Zap(v.YC), Zap(v.ZC)}
}

// Equal compares two triples.
func (v Triple) Equal(w Triple) bool {
	return Is0(v.XC-w.XC) && Is0(v.YC-w.YC) && Is0(v.ZC-w.ZC)
}
