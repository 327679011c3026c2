/*
Package nurbs evaluates generalized non-uniform B-splines and NURBS of
arbitrary degree.

Unlike the fixed cubic families in package segment, a generalized B-spline
spans any number of control points and is not representable as a single
polynomial segment. Evaluation therefore runs De Boor's recursion directly
on the control points (or, for weighted splines, sums Cox-de Boor basis
functions), and differentiation produces another B-spline of one lower
degree rather than a polynomial.

The primary source for the algorithms is

	The NURBS Book, Piegl & Tiller, 2nd edition
	(knot span location: A2.1, basis functions: A2.2,
	De Boor evaluation: A3.1ff)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package nurbs

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splines"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

var (
	// ErrDegree indicates a non-positive spline degree.
	ErrDegree = errors.New("nurbs: degree must be at least 1")
	// ErrTooFewPoints indicates fewer than degree+1 control points.
	ErrTooFewPoints = errors.New("nurbs: too few control points")
	// ErrKnotCount indicates a knot vector whose length is not
	// degree + point count + 1.
	ErrKnotCount = errors.New("nurbs: knot count must equal degree + point count + 1")
	// ErrKnotOrder indicates a decreasing knot vector. Construction
	// fails fast rather than producing plausible-looking garbage.
	ErrKnotOrder = errors.New("nurbs: knot vector must be non-decreasing")
	// ErrWeightCount indicates a weight array whose length differs from
	// the point count.
	ErrWeightCount = errors.New("nurbs: weight count must equal point count")
	// ErrRationalDerivative indicates differentiation of a weighted
	// spline: the derivative of a NURBS is not itself a B-spline of the
	// control points.
	ErrRationalDerivative = errors.New("nurbs: derivative of a weighted spline is not a B-spline")
)

// BSpline is a generalized B-spline curve, optionally rational (NURBS)
// when weights are present. Immutable after construction; the With*
// methods return modified copies.
type BSpline[T splines.Vec[T]] struct {
	degree  int
	points  []T
	knots   []float64
	weights []float64 // nil for a non-rational spline
}

// New creates a non-rational B-spline of the given degree. The knot
// vector must be non-decreasing and contain degree + len(points) + 1
// values; at least degree+1 control points are required.
func New[T splines.Vec[T]](degree int, points []T, knots []float64) (*BSpline[T], error) {
	return NewRational(degree, points, knots, nil)
}

// NewRational creates a NURBS curve: a B-spline whose control points carry
// scalar weights. A nil weight slice creates a non-rational spline;
// otherwise one weight per control point is required.
func NewRational[T splines.Vec[T]](degree int, points []T, knots, weights []float64) (*BSpline[T], error) {
	if degree < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrDegree, degree)
	}
	if len(points) < degree+1 {
		return nil, fmt.Errorf("%w: degree %d needs %d points, got %d",
			ErrTooFewPoints, degree, degree+1, len(points))
	}
	if len(knots) != degree+len(points)+1 {
		return nil, fmt.Errorf("%w: want %d, got %d",
			ErrKnotCount, degree+len(points)+1, len(knots))
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, fmt.Errorf("%w: knot %d (%g) < knot %d (%g)",
				ErrKnotOrder, i, knots[i], i-1, knots[i-1])
		}
	}
	if weights != nil && len(weights) != len(points) {
		return nil, fmt.Errorf("%w: want %d, got %d",
			ErrWeightCount, len(points), len(weights))
	}
	s := &BSpline[T]{
		degree:  degree,
		points:  append([]T(nil), points...),
		knots:   append([]float64(nil), knots...),
		weights: append([]float64(nil), weights...),
	}
	tracer().Debugf("new degree-%d spline, %d points, domain [%g,%g]",
		degree, len(points), s.knots[degree], s.knots[len(s.knots)-degree-1])
	return s, nil
}

// NewClampedUniform creates an open (clamped) uniform B-spline: the knot
// vector repeats its first and last value degree+1 times, so the curve
// interpolates the first and last control point.
func NewClampedUniform[T splines.Vec[T]](degree int, points []T) (*BSpline[T], error) {
	if degree < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrDegree, degree)
	}
	if len(points) < degree+1 {
		return nil, fmt.Errorf("%w: degree %d needs %d points, got %d",
			ErrTooFewPoints, degree, degree+1, len(points))
	}
	knots := make([]float64, degree+len(points)+1)
	interior := len(points) - degree // number of spans in the domain
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= len(points):
			knots[i] = float64(interior)
		default:
			knots[i] = float64(i - degree)
		}
	}
	return New(degree, points, knots)
}

// Degree returns the spline's degree.
func (s *BSpline[T]) Degree() int { return s.degree }

// PointCount returns the number of control points.
func (s *BSpline[T]) PointCount() int { return len(s.points) }

// IsRational is a predicate: does the spline carry weights?
func (s *BSpline[T]) IsRational() bool { return s.weights != nil }

// Point returns control point i. Panics for an index outside the hull.
func (s *BSpline[T]) Point(i int) T {
	if i < 0 || i >= len(s.points) {
		panic(fmt.Sprintf("nurbs: control point index %d out of range 0..%d", i, len(s.points)-1))
	}
	return s.points[i]
}

// Weight returns the weight of control point i (1 for a non-rational
// spline). Panics for an index outside the hull.
func (s *BSpline[T]) Weight(i int) float64 {
	if i < 0 || i >= len(s.points) {
		panic(fmt.Sprintf("nurbs: control point index %d out of range 0..%d", i, len(s.points)-1))
	}
	if s.weights == nil {
		return 1
	}
	return s.weights[i]
}

// Knot returns knot i. Panics for an index outside the knot vector.
func (s *BSpline[T]) Knot(i int) float64 {
	if i < 0 || i >= len(s.knots) {
		panic(fmt.Sprintf("nurbs: knot index %d out of range 0..%d", i, len(s.knots)-1))
	}
	return s.knots[i]
}

// Knots returns a copy of the knot vector.
func (s *BSpline[T]) Knots() []float64 {
	return append([]float64(nil), s.knots...)
}

// Domain returns the parameter interval on which the spline is defined:
// [knots[degree], knots[len-degree-1]].
func (s *BSpline[T]) Domain() (lo, hi float64) {
	return s.knots[s.degree], s.knots[len(s.knots)-s.degree-1]
}

// WithPoint returns a copy with control point i replaced. Panics for an
// index outside the hull.
func (s *BSpline[T]) WithPoint(i int, p T) *BSpline[T] {
	if i < 0 || i >= len(s.points) {
		panic(fmt.Sprintf("nurbs: control point index %d out of range 0..%d", i, len(s.points)-1))
	}
	c := s.clone()
	c.points[i] = p
	return c
}

// WithKnot returns a copy with knot i replaced. The new value must keep
// the knot vector non-decreasing; violations yield ErrKnotOrder.
func (s *BSpline[T]) WithKnot(i int, u float64) (*BSpline[T], error) {
	if i < 0 || i >= len(s.knots) {
		panic(fmt.Sprintf("nurbs: knot index %d out of range 0..%d", i, len(s.knots)-1))
	}
	if (i > 0 && u < s.knots[i-1]) || (i < len(s.knots)-1 && u > s.knots[i+1]) {
		return nil, fmt.Errorf("%w: knot %d = %g", ErrKnotOrder, i, u)
	}
	c := s.clone()
	c.knots[i] = u
	return c, nil
}

func (s *BSpline[T]) clone() *BSpline[T] {
	return &BSpline[T]{
		degree:  s.degree,
		points:  append([]T(nil), s.points...),
		knots:   append([]float64(nil), s.knots...),
		weights: append([]float64(nil), s.weights...),
	}
}

// span locates the knot interval index k with knots[k] <= u < knots[k+1]
// by binary search, clamping u to the domain. At the upper domain bound
// the last non-empty span is returned, so evaluation at the end point is
// well defined.
func (s *BSpline[T]) span(u float64) int {
	n := len(s.knots) - s.degree - 2
	if u >= s.knots[n+1] {
		return n
	}
	if u < s.knots[s.degree] {
		return s.degree
	}
	low, high := s.degree, n+1
	mid := (low + high) / 2
	for u < s.knots[mid] || u >= s.knots[mid+1] {
		if u < s.knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisAt computes the degree+1 non-vanishing basis functions at u on the
// given span, by the triangular Cox-de Boor scheme (The NURBS Book,
// A2.2). Index j of the result belongs to control point span-degree+j.
func (s *BSpline[T]) basisAt(span int, u float64) []float64 {
	vals := make([]float64, s.degree+1)
	left := make([]float64, s.degree+1)
	right := make([]float64, s.degree+1)
	vals[0] = 1
	for j := 1; j <= s.degree; j++ {
		left[j] = u - s.knots[span+1-j]
		right[j] = s.knots[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			temp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		vals[j] = saved
	}
	return vals
}

// BasisFunctions returns all point-count basis function values at u.
// Only degree+1 of them are non-zero; the rest vanish. Mostly useful for
// testing the partition-of-unity property.
func (s *BSpline[T]) BasisFunctions(u float64) []float64 {
	span := s.span(u)
	window := s.basisAt(span, u)
	vals := make([]float64, len(s.points))
	copy(vals[span-s.degree:], window)
	return vals
}

// Eval evaluates the spline at parameter u. u is clamped to the domain.
//
// The non-rational path runs De Boor's recursion on a window of degree+1
// control points. The rational path instead forms the weighted basis sum
//
//	sum(w.i N.i(u) P.i) / sum(w.i N.i(u))
//
// which costs O(pointCount x degree) per sample. Fine for the small
// control hulls this package is meant for, and not optimized beyond that.
func (s *BSpline[T]) Eval(u float64) T {
	if lo, hi := s.Domain(); u < lo {
		u = lo
	} else if u > hi {
		u = hi
	}
	k := s.span(u)
	if s.weights != nil {
		return s.evalRational(k, u)
	}
	// De Boor's algorithm: repeatedly corner-cut the control window.
	buf := make([]T, s.degree+1)
	for i := range buf {
		buf[i] = s.points[i+k-s.degree]
	}
	for r := 1; r <= s.degree; r++ {
		for j := s.degree; j >= r; j-- {
			i := j + k - s.degree
			denom := s.knots[j+1+k-r] - s.knots[i]
			var alpha float64 // 0 on repeated knots
			if denom != 0 {
				alpha = (u - s.knots[i]) / denom
			}
			buf[j] = splines.Lerp(buf[j-1], buf[j], alpha)
		}
	}
	return buf[s.degree]
}

func (s *BSpline[T]) evalRational(span int, u float64) T {
	basis := s.basisAt(span, u)
	var num T // zero vector
	var den float64
	for j, b := range basis {
		i := span - s.degree + j
		wb := s.weights[i] * b
		num = num.Plus(s.points[i].Scaled(wb))
		den += wb
	}
	return num.Scaled(1 / den)
}

// EvalDerivative evaluates the velocity at u. For a weighted spline this
// yields ErrRationalDerivative; see Derivative.
func (s *BSpline[T]) EvalDerivative(u float64) (T, error) {
	d, err := s.Derivative()
	if err != nil {
		var zero T
		return zero, err
	}
	return d.Eval(u), nil
}

// Derivative returns the spline's derivative as its own B-spline of one
// lower degree, with control points
//
//	Q.i = degree * (P.i+1 - P.i) / (U.i+degree+1 - U.i+1)
//
// (0 where the denominator vanishes) over the knot vector with the first
// and last knot dropped. Weighted splines yield ErrRationalDerivative:
// the quotient rule does not produce a B-spline of the control points.
func (s *BSpline[T]) Derivative() (*BSpline[T], error) {
	if s.weights != nil {
		return nil, ErrRationalDerivative
	}
	qs := make([]T, len(s.points)-1)
	for i := range qs {
		denom := s.knots[i+s.degree+1] - s.knots[i+1]
		if denom != 0 {
			qs[i] = s.points[i+1].Minus(s.points[i]).Scaled(float64(s.degree) / denom)
		}
		// else: zero vector, repeated-knot case
	}
	return &BSpline[T]{
		degree: s.degree - 1,
		points: qs,
		knots:  append([]float64(nil), s.knots[1:len(s.knots)-1]...),
	}, nil
}
