/*
Package rational implements exact fraction arithmetic and small fixed-size
matrices over fractions.

Spline characteristic matrices are derived and inverted in exact rational
arithmetic and cast to floating point exactly once. This is the whole point
of the package: basis conversion between spline families must not accumulate
rounding error, since the resulting matrices are baked in as constants used
by every curve evaluation afterwards.

Numerator and denominator are int64. Intermediate products during repeated
4x4 inversion stay far inside the 64-bit range for every matrix this module
derives; all arithmetic is overflow-checked nevertheless, and overflow is
treated as fatal.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package rational

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rational'
func tracer() tracing.Trace {
	return tracing.Select("rational")
}

var (
	// ErrDivisionByZero indicates a zero denominator or a division by a
	// zero-valued rational.
	ErrDivisionByZero = errors.New("rational: division by zero")
	// ErrOverflow indicates int64 overflow during exact arithmetic.
	// Exactness is guaranteed only within the representable range, so
	// overflow is fatal and surfaces as a panic.
	ErrOverflow = errors.New("rational: arithmetic overflow")
	// ErrDegenerateInterval indicates an inverse interpolation over an
	// empty interval.
	ErrDegenerateInterval = errors.New("rational: inverse lerp over empty interval")
)

// Rational is a fraction with int64 numerator and denominator.
// Values are canonical: the denominator is positive, the sign lives in the
// numerator, gcd(|num|,den) = 1, and zero is 0/1. Two canonical rationals
// are equal iff they are == as structs.
//
// The zero value of the type is NOT a valid Rational; use the constructors.
type Rational struct {
	num, den int64
}

// Frequently used constants.
var (
	Zero = Rational{0, 1}
	One  = Rational{1, 1}
	Two  = Rational{2, 1}
)

// New creates a canonical rational num/den. A zero denominator yields
// ErrDivisionByZero.
func New(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(num, den), nil
}

// R is a quick notation for constructing a rational from integer literals.
// It panics on a zero denominator and is meant for compile-time constant
// matrices; client input should go through New.
func R(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInt creates the rational i/1.
func FromInt(i int64) Rational {
	return Rational{i, 1}
}

// reduce brings num/den into canonical form. den must not be 0.
func reduce(num, den int64) Rational {
	if num == 0 {
		return Rational{0, 1}
	}
	if den < 0 {
		num, den = checkedNeg(num), checkedNeg(den)
	}
	if den == 1 {
		return Rational{num, 1}
	}
	g := int64(gcd(uabs(num), uint64(den)))
	return Rational{num / g, den / g}
}

// Num returns the (signed) numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the (positive) denominator.
func (r Rational) Den() int64 { return r.den }

// IsZero is a predicate: is r = 0 ?
func (r Rational) IsZero() bool { return r.num == 0 }

// IsInteger is a predicate: does r have denominator 1 (in canonical form)?
func (r Rational) IsInteger() bool { return r.den == 1 }

// Float64 casts r to floating point. This is the only place exactness is
// given up.
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// Stringer for rationals: "2/3", integers print without denominator.
func (r Rational) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Add returns r + s.
func (r Rational) Add(s Rational) Rational {
	num := checkedAdd(checkedMul(r.num, s.den), checkedMul(s.num, r.den))
	den := checkedMul(r.den, s.den)
	return reduce(num, den)
}

// Sub returns r - s.
func (r Rational) Sub(s Rational) Rational {
	return r.Add(s.Neg())
}

// Mul returns r * s. Cross factors are cancelled before multiplying to keep
// intermediate products small.
func (r Rational) Mul(s Rational) Rational {
	g1 := int64(gcd(uabs(r.num), uint64(s.den)))
	g2 := int64(gcd(uabs(s.num), uint64(r.den)))
	num := checkedMul(r.num/g1, s.num/g2)
	den := checkedMul(r.den/g2, s.den/g1)
	return reduce(num, den)
}

// Div returns r / s, or ErrDivisionByZero for s = 0.
func (r Rational) Div(s Rational) (Rational, error) {
	rec, err := s.Reciprocal()
	if err != nil {
		return Rational{}, err
	}
	return r.Mul(rec), nil
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{checkedNeg(r.num), r.den}
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.num < 0 {
		return r.Neg()
	}
	return r
}

// Reciprocal returns 1/r, or ErrDivisionByZero for r = 0.
func (r Rational) Reciprocal() (Rational, error) {
	if r.num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(r.den, r.num), nil
}

// Pow returns r to the k-th integer power. Negative exponents of zero yield
// ErrDivisionByZero.
func (r Rational) Pow(k int) (Rational, error) {
	base := r
	if k < 0 {
		rec, err := r.Reciprocal()
		if err != nil {
			return Rational{}, err
		}
		base, k = rec, -k
	}
	pow := One
	for ; k > 0; k-- {
		pow = pow.Mul(base)
	}
	return pow, nil
}

// Cmp compares two rationals by cross-multiplication (overflow-checked).
// It returns -1, 0 or +1.
func (r Rational) Cmp(s Rational) int {
	lhs := checkedMul(r.num, s.den)
	rhs := checkedMul(s.num, r.den)
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return +1
	}
	return 0
}

// Equal compares two (canonical) rationals exactly.
func (r Rational) Equal(s Rational) bool {
	return r == s
}

// Min returns the smaller of two rationals.
func Min(r, s Rational) Rational {
	if r.Cmp(s) <= 0 {
		return r
	}
	return s
}

// Max returns the larger of two rationals.
func Max(r, s Rational) Rational {
	if r.Cmp(s) >= 0 {
		return r
	}
	return s
}

// Lerp interpolates linearly between a and b: a + (b-a)t. Exact, and not
// clamped: t outside [0,1] extrapolates.
func Lerp(a, b, t Rational) Rational {
	return a.Add(b.Sub(a).Mul(t))
}

// InverseLerp solves Lerp(a, b, t) = v for t. An empty interval a = b
// yields ErrDegenerateInterval.
func InverseLerp(a, b, v Rational) (Rational, error) {
	span := b.Sub(a)
	if span.IsZero() {
		return Rational{}, ErrDegenerateInterval
	}
	t, err := v.Sub(a).Div(span)
	if err != nil {
		return Rational{}, err
	}
	return t, nil
}

// === Checked int64 helpers =================================================

func uabs(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func checkedNeg(a int64) int64 {
	if a == math.MinInt64 {
		panic(ErrOverflow)
	}
	return -a
}

func checkedAdd(a, b int64) int64 {
	s := a + b
	if (a > 0 && b > 0 && s <= 0) || (a < 0 && b < 0 && s >= 0) {
		panic(ErrOverflow)
	}
	return s
}

func checkedMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		panic(ErrOverflow)
	}
	p := a * b
	if p/b != a {
		panic(ErrOverflow)
	}
	return p
}
