/*
Package charmat holds the characteristic matrices of the classic spline
families and derives the conversion matrices between them.

A characteristic matrix maps a column of control points to the coefficient
vector of the equivalent polynomial segment. Converting control points from
family A to family B is then

	P.B = inverse(charmat(B)) * charmat(A) * P.A

Both the matrices and the inversion are exact rational arithmetic; results
are cast to floating point exactly once, at registry initialization. All
tables are read-only after initialization and safe to share across
goroutines without locking.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package charmat

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splines/rational"
)

// tracer writes to trace with key 'charmat'
func tracer() tracing.Trace {
	return tracing.Select("charmat")
}

// Family enumerates the cubic spline families with a fixed characteristic
// matrix.
type Family int

const (
	// Bezier is the cubic Bernstein basis: the curve interpolates the
	// first and last control point, tangent to the control polygon.
	Bezier Family = iota
	// Hermite control values are point, tangent, point, tangent.
	Hermite
	// CatmullRom interpolates its two interior control points.
	CatmullRom
	// UniformBSpline approximates all four control points with C2
	// continuity across adjacent segments.
	UniformBSpline
)

// Stringer for family tags.
func (f Family) String() string {
	switch f {
	case Bezier:
		return "bezier"
	case Hermite:
		return "hermite"
	case CatmullRom:
		return "catmull-rom"
	case UniformBSpline:
		return "b-spline"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

func r(num, den int64) rational.Rational { return rational.R(num, den) }

// The five hand-derived basis matrices. Row i holds the contribution of
// each control value to the coefficient of t^i.
var (
	quadraticBezierMatrix = rational.M3(
		r(1, 1), r(0, 1), r(0, 1),
		r(-2, 1), r(2, 1), r(0, 1),
		r(1, 1), r(-2, 1), r(1, 1),
	)
	bezierMatrix = rational.M4(
		r(1, 1), r(0, 1), r(0, 1), r(0, 1),
		r(-3, 1), r(3, 1), r(0, 1), r(0, 1),
		r(3, 1), r(-6, 1), r(3, 1), r(0, 1),
		r(-1, 1), r(3, 1), r(-3, 1), r(1, 1),
	)
	hermiteMatrix = rational.M4(
		r(1, 1), r(0, 1), r(0, 1), r(0, 1),
		r(0, 1), r(1, 1), r(0, 1), r(0, 1),
		r(-3, 1), r(-2, 1), r(3, 1), r(-1, 1),
		r(2, 1), r(1, 1), r(-2, 1), r(1, 1),
	)
	catmullRomMatrix = rational.M4(
		r(0, 1), r(2, 1), r(0, 1), r(0, 1),
		r(-1, 1), r(0, 1), r(1, 1), r(0, 1),
		r(2, 1), r(-5, 1), r(4, 1), r(-1, 1),
		r(-1, 1), r(3, 1), r(-3, 1), r(1, 1),
	).Scaled(r(1, 2))
	uniformBSplineMatrix = rational.M4(
		r(1, 1), r(4, 1), r(1, 1), r(0, 1),
		r(-3, 1), r(0, 1), r(3, 1), r(0, 1),
		r(3, 1), r(-6, 1), r(3, 1), r(0, 1),
		r(-1, 1), r(3, 1), r(-3, 1), r(1, 1),
	).Scaled(r(1, 6))
)

// Registry tables. Keyed by int(Family), resp. by a packed (from,to) pair
// for conversions. Sorted maps give deterministic iteration order for
// Families() and for tracing output.
var (
	familyTable     *treemap.Map // int(Family) -> rational.Matrix4
	conversionTable *treemap.Map // convKey(from,to) -> conversion
)

type conversion struct {
	exact rational.Matrix4
	float [4][4]float64
}

func convKey(from, to Family) int {
	return int(from)<<8 | int(to)
}

func init() {
	familyTable = treemap.NewWithIntComparator()
	familyTable.Put(int(Bezier), bezierMatrix)
	familyTable.Put(int(Hermite), hermiteMatrix)
	familyTable.Put(int(CatmullRom), catmullRomMatrix)
	familyTable.Put(int(UniformBSpline), uniformBSplineMatrix)

	// Derive all pairwise conversion matrices once, exactly. The table is
	// never written to again.
	conversionTable = treemap.NewWithIntComparator()
	for _, from := range Families() {
		for _, to := range Families() {
			if from == to {
				continue
			}
			inv, err := Characteristic(to).Inverse()
			if err != nil {
				panic(fmt.Sprintf("characteristic matrix of %s is singular: %v", to, err))
			}
			conv := inv.Mul(Characteristic(from))
			tracer().Debugf("conversion %s -> %s = %v", from, to, conv)
			conversionTable.Put(convKey(from, to), conversion{
				exact: conv,
				float: conv.Float(),
			})
		}
	}
}

// Families lists all registered cubic families in deterministic order.
func Families() []Family {
	fams := make([]Family, 0, familyTable.Size())
	it := familyTable.Iterator()
	for it.Next() {
		fams = append(fams, Family(it.Key().(int)))
	}
	return fams
}

// Characteristic returns the exact characteristic matrix of a cubic family.
func Characteristic(f Family) rational.Matrix4 {
	m, ok := familyTable.Get(int(f))
	if !ok {
		panic(fmt.Sprintf("no characteristic matrix for %s", f))
	}
	return m.(rational.Matrix4)
}

// CharacteristicFloat returns the characteristic matrix of a cubic family,
// cast to floating point.
func CharacteristicFloat(f Family) [4][4]float64 {
	return Characteristic(f).Float()
}

// QuadraticBezier returns the exact characteristic matrix of the quadratic
// Bernstein basis, the only quadratic family with a fixed matrix.
func QuadraticBezier() rational.Matrix3 {
	return quadraticBezierMatrix
}

// QuadraticBezierFloat returns the quadratic Bézier characteristic matrix,
// cast to floating point.
func QuadraticBezierFloat() [3][3]float64 {
	return quadraticBezierMatrix.Float()
}

// Conversion returns the exact matrix converting control points of family
// 'from' into control points of family 'to' tracing the identical curve.
// Converting a family to itself is the identity.
func Conversion(from, to Family) rational.Matrix4 {
	if from == to {
		return rational.Identity4()
	}
	c, ok := conversionTable.Get(convKey(from, to))
	if !ok {
		panic(fmt.Sprintf("no conversion %s -> %s", from, to))
	}
	return c.(conversion).exact
}

// ConversionFloat returns the conversion matrix from Conversion, cast
// to floating point once at initialization. This is the matrix the segment
// types apply per control-point transform.
func ConversionFloat(from, to Family) [4][4]float64 {
	if from == to {
		return rational.Identity4().Float()
	}
	c, ok := conversionTable.Get(convKey(from, to))
	if !ok {
		panic(fmt.Sprintf("no conversion %s -> %s", from, to))
	}
	return c.(conversion).float
}
