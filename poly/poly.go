/*
Package poly represents parametric curve segments as per-axis polynomial
coefficient vectors.

A cubic segment is c0 + c1 t + c2 t² + c3 t³ with vector-valued
coefficients; a 2D or 3D polynomial is simply N independent scalar
polynomials sharing the parameter t, which is why the types are generic
over the vector type. Evaluation uses Horner's scheme and differentiation
is closed-form coefficient differentiation, so evaluating the derivative
polynomial and differentiating the evaluation agree algebraically.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package poly

import (
	"github.com/npillmayer/splines"
)

// Linear is a degree-1 polynomial c0 + c1 t.
type Linear[T splines.Vec[T]] struct {
	C0, C1 T
}

// Quadratic is a degree-2 polynomial c0 + c1 t + c2 t².
type Quadratic[T splines.Vec[T]] struct {
	C0, C1, C2 T
}

// Cubic is a degree-3 polynomial c0 + c1 t + c2 t² + c3 t³.
type Cubic[T splines.Vec[T]] struct {
	C0, C1, C2, C3 T
}

// === Linear ================================================================

// Eval evaluates the polynomial at t.
func (p Linear[T]) Eval(t float64) T {
	return p.C0.Plus(p.C1.Scaled(t))
}

// EvalDerivative evaluates the first derivative at t, which is constant.
func (p Linear[T]) EvalDerivative(t float64) T {
	return p.C1
}

// === Quadratic =============================================================

// Eval evaluates the polynomial at t using Horner's scheme.
func (p Quadratic[T]) Eval(t float64) T {
	return p.C0.Plus(p.C1.Plus(p.C2.Scaled(t)).Scaled(t))
}

// Derivative returns the derivative polynomial c1 + 2 c2 t.
func (p Quadratic[T]) Derivative() Linear[T] {
	return Linear[T]{C0: p.C1, C1: p.C2.Scaled(2)}
}

// EvalDerivative evaluates the first derivative at t.
func (p Quadratic[T]) EvalDerivative(t float64) T {
	return p.C1.Plus(p.C2.Scaled(2 * t))
}

// EvalSecondDerivative evaluates the second derivative, which is constant.
func (p Quadratic[T]) EvalSecondDerivative(t float64) T {
	return p.C2.Scaled(2)
}

// === Cubic =================================================================

// Eval evaluates the polynomial at t using Horner's scheme.
func (p Cubic[T]) Eval(t float64) T {
	return p.C0.Plus(p.C1.Plus(p.C2.Plus(p.C3.Scaled(t)).Scaled(t)).Scaled(t))
}

// Derivative returns the derivative polynomial c1 + 2 c2 t + 3 c3 t².
func (p Cubic[T]) Derivative() Quadratic[T] {
	return Quadratic[T]{C0: p.C1, C1: p.C2.Scaled(2), C2: p.C3.Scaled(3)}
}

// EvalDerivative evaluates the first derivative at t.
func (p Cubic[T]) EvalDerivative(t float64) T {
	return p.C1.Plus(p.C2.Scaled(2).Plus(p.C3.Scaled(3 * t)).Scaled(t))
}

// EvalSecondDerivative evaluates the second derivative at t.
func (p Cubic[T]) EvalSecondDerivative(t float64) T {
	return p.C2.Scaled(2).Plus(p.C3.Scaled(6 * t))
}

// EvalThirdDerivative evaluates the third derivative, which is constant.
func (p Cubic[T]) EvalThirdDerivative(t float64) T {
	return p.C3.Scaled(6)
}

// === Basis application =====================================================

// CubicFromBasis multiplies a (floated) characteristic matrix by a column
// of four control values, yielding the segment's coefficient vector.
func CubicFromBasis[T splines.Vec[T]](m [4][4]float64, p [4]T) Cubic[T] {
	row := func(i int) T {
		return p[0].Scaled(m[i][0]).
			Plus(p[1].Scaled(m[i][1])).
			Plus(p[2].Scaled(m[i][2])).
			Plus(p[3].Scaled(m[i][3]))
	}
	return Cubic[T]{C0: row(0), C1: row(1), C2: row(2), C3: row(3)}
}

// QuadraticFromBasis multiplies a (floated) 3x3 characteristic matrix by a
// column of three control values.
func QuadraticFromBasis[T splines.Vec[T]](m [3][3]float64, p [3]T) Quadratic[T] {
	row := func(i int) T {
		return p[0].Scaled(m[i][0]).
			Plus(p[1].Scaled(m[i][1])).
			Plus(p[2].Scaled(m[i][2]))
	}
	return Quadratic[T]{C0: row(0), C1: row(1), C2: row(2)}
}
