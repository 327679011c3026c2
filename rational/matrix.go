package rational

import (
	"bytes"
	"fmt"
)

// ErrSingularMatrix indicates an attempt to invert a matrix with
// determinant zero. It is a division-by-zero-kind condition: errors.Is
// reports ErrDivisionByZero for it. Unreachable for the fixed
// characteristic matrices, but reachable for matrices derived from
// degenerate (colliding) knot values.
var ErrSingularMatrix = fmt.Errorf("matrix is singular: %w", ErrDivisionByZero)

// Matrix3 is an immutable 3x3 matrix of rationals, row major.
type Matrix3 [3][3]Rational

// Matrix4 is an immutable 4x4 matrix of rationals, row major.
type Matrix4 [4][4]Rational

// M3 builds a 3x3 matrix from 9 rationals in row-major order.
func M3(e ...Rational) Matrix3 {
	if len(e) != 9 {
		panic(fmt.Sprintf("M3 needs 9 entries, got %d", len(e)))
	}
	var m Matrix3
	for i := 0; i < 3; i++ {
		copy(m[i][:], e[3*i:3*i+3])
	}
	return m
}

// M4 builds a 4x4 matrix from 16 rationals in row-major order.
func M4(e ...Rational) Matrix4 {
	if len(e) != 16 {
		panic(fmt.Sprintf("M4 needs 16 entries, got %d", len(e)))
	}
	var m Matrix4
	for i := 0; i < 4; i++ {
		copy(m[i][:], e[4*i:4*i+4])
	}
	return m
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	m := zero3()
	for i := 0; i < 3; i++ {
		m[i][i] = One
	}
	return m
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	m := zero4()
	for i := 0; i < 4; i++ {
		m[i][i] = One
	}
	return m
}

func zero3() Matrix3 {
	var m Matrix3
	for i := range m {
		for j := range m[i] {
			m[i][j] = Zero
		}
	}
	return m
}

func zero4() Matrix4 {
	var m Matrix4
	for i := range m {
		for j := range m[i] {
			m[i][j] = Zero
		}
	}
	return m
}

// === 3x3 ===================================================================

// Mul returns the matrix product m * n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	p := zero3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			acc := Zero
			for k := 0; k < 3; k++ {
				acc = acc.Add(m[i][k].Mul(n[k][j]))
			}
			p[i][j] = acc
		}
	}
	return p
}

// MulVec multiplies m by a column vector.
func (m Matrix3) MulVec(v [3]Rational) [3]Rational {
	var out [3]Rational
	for i := 0; i < 3; i++ {
		acc := Zero
		for k := 0; k < 3; k++ {
			acc = acc.Add(m[i][k].Mul(v[k]))
		}
		out[i] = acc
	}
	return out
}

// Scaled returns m with every entry multiplied by r.
func (m Matrix3) Scaled(r Rational) Matrix3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] = m[i][j].Mul(r)
		}
	}
	return m
}

// Determinant computes the determinant by cofactor expansion along the
// first row. Exact.
func (m Matrix3) Determinant() Rational {
	c0 := m[1][1].Mul(m[2][2]).Sub(m[1][2].Mul(m[2][1]))
	c1 := m[1][0].Mul(m[2][2]).Sub(m[1][2].Mul(m[2][0]))
	c2 := m[1][0].Mul(m[2][1]).Sub(m[1][1].Mul(m[2][0]))
	return m[0][0].Mul(c0).Sub(m[0][1].Mul(c1)).Add(m[0][2].Mul(c2))
}

// Inverse returns the exact inverse, computed as adjugate over determinant.
// A zero determinant yields ErrSingularMatrix.
func (m Matrix3) Inverse() (Matrix3, error) {
	det := m.Determinant()
	if det.IsZero() {
		tracer().Errorf("cannot invert singular 3x3 matrix %v", m)
		return Matrix3{}, ErrSingularMatrix
	}
	rec, _ := det.Reciprocal() // det != 0 checked above
	cof := func(a, b, c, d Rational) Rational {
		return a.Mul(d).Sub(b.Mul(c))
	}
	adj := Matrix3{
		{cof(m[1][1], m[1][2], m[2][1], m[2][2]),
			cof(m[0][2], m[0][1], m[2][2], m[2][1]),
			cof(m[0][1], m[0][2], m[1][1], m[1][2])},
		{cof(m[1][2], m[1][0], m[2][2], m[2][0]),
			cof(m[0][0], m[0][2], m[2][0], m[2][2]),
			cof(m[0][2], m[0][0], m[1][2], m[1][0])},
		{cof(m[1][0], m[1][1], m[2][0], m[2][1]),
			cof(m[0][1], m[0][0], m[2][1], m[2][0]),
			cof(m[0][0], m[0][1], m[1][0], m[1][1])},
	}
	return adj.Scaled(rec), nil
}

// Float casts every entry to float64.
func (m Matrix3) Float() [3][3]float64 {
	var f [3][3]float64
	for i := range m {
		for j := range m[i] {
			f[i][j] = m[i][j].Float64()
		}
	}
	return f
}

// Debug Stringer for a 3x3 rational matrix.
func (m Matrix3) String() string {
	return matrixString(3, func(i, j int) Rational { return m[i][j] })
}

// === 4x4 ===================================================================

// Mul returns the matrix product m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	p := zero4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			acc := Zero
			for k := 0; k < 4; k++ {
				acc = acc.Add(m[i][k].Mul(n[k][j]))
			}
			p[i][j] = acc
		}
	}
	return p
}

// MulVec multiplies m by a column vector.
func (m Matrix4) MulVec(v [4]Rational) [4]Rational {
	var out [4]Rational
	for i := 0; i < 4; i++ {
		acc := Zero
		for k := 0; k < 4; k++ {
			acc = acc.Add(m[i][k].Mul(v[k]))
		}
		out[i] = acc
	}
	return out
}

// Scaled returns m with every entry multiplied by r.
func (m Matrix4) Scaled(r Rational) Matrix4 {
	for i := range m {
		for j := range m[i] {
			m[i][j] = m[i][j].Mul(r)
		}
	}
	return m
}

// subdeterminants of the first two and last two rows. The 4x4 determinant
// and adjugate decompose into products of these 2x2 minors, which keeps the
// computation closed-form and branch-free (no elimination, no pivoting).
func (m Matrix4) minors() (s, c [6]Rational) {
	d := func(r0, c0, r1, c1 int) Rational {
		return m[r0][c0].Mul(m[r1][c1]).Sub(m[r1][c0].Mul(m[r0][c1]))
	}
	s[0] = d(0, 0, 1, 1)
	s[1] = d(0, 0, 1, 2)
	s[2] = d(0, 0, 1, 3)
	s[3] = d(0, 1, 1, 2)
	s[4] = d(0, 1, 1, 3)
	s[5] = d(0, 2, 1, 3)
	c[0] = d(2, 0, 3, 1)
	c[1] = d(2, 0, 3, 2)
	c[2] = d(2, 0, 3, 3)
	c[3] = d(2, 1, 3, 2)
	c[4] = d(2, 1, 3, 3)
	c[5] = d(2, 2, 3, 3)
	return s, c
}

// Determinant computes the determinant via the 2x2 minor decomposition.
// Exact.
func (m Matrix4) Determinant() Rational {
	s, c := m.minors()
	return s[0].Mul(c[5]).
		Sub(s[1].Mul(c[4])).
		Add(s[2].Mul(c[3])).
		Add(s[3].Mul(c[2])).
		Sub(s[4].Mul(c[1])).
		Add(s[5].Mul(c[0]))
}

// Inverse returns the exact inverse, computed as adjugate over determinant
// via the 2x2 minor decomposition. A zero determinant yields
// ErrSingularMatrix.
func (m Matrix4) Inverse() (Matrix4, error) {
	s, c := m.minors()
	det := s[0].Mul(c[5]).
		Sub(s[1].Mul(c[4])).
		Add(s[2].Mul(c[3])).
		Add(s[3].Mul(c[2])).
		Sub(s[4].Mul(c[1])).
		Add(s[5].Mul(c[0]))
	if det.IsZero() {
		tracer().Errorf("cannot invert singular 4x4 matrix %v", m)
		return Matrix4{}, ErrSingularMatrix
	}
	rec, _ := det.Reciprocal() // det != 0 checked above

	adj := zero4()
	adj[0][0] = m[1][1].Mul(c[5]).Sub(m[1][2].Mul(c[4])).Add(m[1][3].Mul(c[3]))
	adj[0][1] = m[0][1].Mul(c[5]).Neg().Add(m[0][2].Mul(c[4])).Sub(m[0][3].Mul(c[3]))
	adj[0][2] = m[3][1].Mul(s[5]).Sub(m[3][2].Mul(s[4])).Add(m[3][3].Mul(s[3]))
	adj[0][3] = m[2][1].Mul(s[5]).Neg().Add(m[2][2].Mul(s[4])).Sub(m[2][3].Mul(s[3]))

	adj[1][0] = m[1][0].Mul(c[5]).Neg().Add(m[1][2].Mul(c[2])).Sub(m[1][3].Mul(c[1]))
	adj[1][1] = m[0][0].Mul(c[5]).Sub(m[0][2].Mul(c[2])).Add(m[0][3].Mul(c[1]))
	adj[1][2] = m[3][0].Mul(s[5]).Neg().Add(m[3][2].Mul(s[2])).Sub(m[3][3].Mul(s[1]))
	adj[1][3] = m[2][0].Mul(s[5]).Sub(m[2][2].Mul(s[2])).Add(m[2][3].Mul(s[1]))

	adj[2][0] = m[1][0].Mul(c[4]).Sub(m[1][1].Mul(c[2])).Add(m[1][3].Mul(c[0]))
	adj[2][1] = m[0][0].Mul(c[4]).Neg().Add(m[0][1].Mul(c[2])).Sub(m[0][3].Mul(c[0]))
	adj[2][2] = m[3][0].Mul(s[4]).Sub(m[3][1].Mul(s[2])).Add(m[3][3].Mul(s[0]))
	adj[2][3] = m[2][0].Mul(s[4]).Neg().Add(m[2][1].Mul(s[2])).Sub(m[2][3].Mul(s[0]))

	adj[3][0] = m[1][0].Mul(c[3]).Neg().Add(m[1][1].Mul(c[1])).Sub(m[1][2].Mul(c[0]))
	adj[3][1] = m[0][0].Mul(c[3]).Sub(m[0][1].Mul(c[1])).Add(m[0][2].Mul(c[0]))
	adj[3][2] = m[3][0].Mul(s[3]).Neg().Add(m[3][1].Mul(s[1])).Sub(m[3][2].Mul(s[0]))
	adj[3][3] = m[2][0].Mul(s[3]).Sub(m[2][1].Mul(s[1])).Add(m[2][2].Mul(s[0]))

	return adj.Scaled(rec), nil
}

// Float casts every entry to float64.
func (m Matrix4) Float() [4][4]float64 {
	var f [4][4]float64
	for i := range m {
		for j := range m[i] {
			f[i][j] = m[i][j].Float64()
		}
	}
	return f
}

// Debug Stringer for a 4x4 rational matrix.
func (m Matrix4) String() string {
	return matrixString(4, func(i, j int) Rational { return m[i][j] })
}

func matrixString(n int, at func(i, j int) Rational) string {
	var buffer bytes.Buffer
	buffer.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			buffer.WriteString("|")
		}
		for j := 0; j < n; j++ {
			if j > 0 {
				buffer.WriteString(",")
			}
			buffer.WriteString(at(i, j).String())
		}
	}
	buffer.WriteString("]")
	return buffer.String()
}
