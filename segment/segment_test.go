package segment

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splines"
	"github.com/npillmayer/splines/charmat"
	"github.com/stretchr/testify/assert"
)

func approx(a, b splines.Pair, eps float64) bool {
	d := a.Minus(b)
	return d.Dot(d) <= eps*eps
}

// S-curve: endpoints are hit exactly, the midpoint follows from repeated
// lerp: (0.5, 0.75).
func TestBezierSCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(1, 1), splines.P(1, 0))
	if s.Eval(0) != splines.P(0, 0) {
		t.Errorf("Expected exact start point (0,0), got %v", s.Eval(0))
	}
	if s.Eval(1) != splines.P(1, 0) {
		t.Errorf("Expected exact end point (1,0), got %v", s.Eval(1))
	}
	if !approx(s.Eval(0.5), splines.P(0.5, 0.75), 1e-12) {
		t.Errorf("Expected midpoint (0.5,0.75), got %v", s.Eval(0.5))
	}
}

func TestHermiteEndConditions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, m0 := splines.P(0, 0), splines.P(1, 2)
	p1, m1 := splines.P(3, 1), splines.P(-1, 0)
	h := Hermite(p0, m0, p1, m1)
	assert.True(t, approx(h.Eval(0), p0, 1e-12))
	assert.True(t, approx(h.Eval(1), p1, 1e-12))
	assert.True(t, approx(h.EvalDerivative(0), m0, 1e-12))
	assert.True(t, approx(h.EvalDerivative(1), m1, 1e-12))
}

func TestCatmullRomInterpolates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1 := splines.P(-1, 0), splines.P(0, 0)
	p2, p3 := splines.P(1, 1), splines.P(2, 1)
	c := CatmullRom(p0, p1, p2, p3)
	if !approx(c.Eval(0), p1, 1e-12) {
		t.Errorf("Expected curve to start at p1, got %v", c.Eval(0))
	}
	if !approx(c.Eval(1), p2, 1e-12) {
		t.Errorf("Expected curve to end at p2, got %v", c.Eval(1))
	}
	// tangent at 0 is (p2-p0)/2
	want := p2.Minus(p0).Scaled(0.5)
	if !approx(c.EvalDerivative(0), want, 1e-12) {
		t.Errorf("Expected tangent %v, got %v", want, c.EvalDerivative(0))
	}
}

func TestBSplineInsideHull(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := UniformBSpline(splines.P(0, 0), splines.P(1, 2), splines.P(2, 2), splines.P(3, 0))
	// start point is (p0 + 4 p1 + p2)/6
	want := splines.P(0, 0).Plus(splines.P(1, 2).Scaled(4)).Plus(splines.P(2, 2)).Scaled(1.0 / 6.0)
	if !approx(b.Eval(0), want, 1e-12) {
		t.Errorf("Expected start %v, got %v", want, b.Eval(0))
	}
}

func TestConversionRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	orig := Bezier(splines.P(0.3, -1.2), splines.P(2.5, 4), splines.P(-3, 0.5), splines.P(1, 1))
	for _, fam := range charmat.Families() {
		back := orig.Convert(fam).Convert(charmat.Bezier)
		for i := 0; i < 4; i++ {
			if !approx(back.Point(i), orig.Point(i), 1e-5) {
				t.Errorf("%s round trip: point %d drifted from %v to %v",
					fam, i, orig.Point(i), back.Point(i))
			}
		}
	}
}

func TestConversionTracesSameCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	orig := CatmullRom(splines.P(-1, -1), splines.P(0, 0), splines.P(1, 1), splines.P(2, 0))
	for _, fam := range charmat.Families() {
		conv := orig.Convert(fam)
		for tt := 0.0; tt <= 1.0; tt += 0.125 {
			if !approx(conv.Eval(tt), orig.Eval(tt), 1e-9) {
				t.Errorf("converted %s curve differs at t=%g: %v vs %v",
					fam, tt, conv.Eval(tt), orig.Eval(tt))
			}
		}
	}
}

func TestConvertSameFamilyIsNoop(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := Hermite(splines.P(0, 0), splines.P(1, 0), splines.P(1, 1), splines.P(0, 1))
	if !h.Convert(charmat.Hermite).Equal(h) {
		t.Errorf("Expected self-conversion to be the identity")
	}
}

func TestSplitReconstruction(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(1, 3), splines.P(3, -1), splines.P(4, 2))
	const at = 0.3
	pre, post, err := s.Split(at)
	if err != nil {
		t.Fatalf("Expected split to succeed: %v", err)
	}
	for u := 0.0; u <= 1.0; u += 0.1 {
		if !approx(pre.Eval(u), s.Eval(u*at), 1e-9) {
			t.Errorf("pre-segment differs at u=%g", u)
		}
		if !approx(post.Eval(u), s.Eval(at+u*(1-at)), 1e-9) {
			t.Errorf("post-segment differs at u=%g", u)
		}
	}
}

func TestSplitRequiresBezier(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := Hermite(splines.P(0, 0), splines.P(1, 0), splines.P(1, 1), splines.P(0, 1))
	_, _, err := h.Split(0.5)
	assert.ErrorIs(t, err, ErrNotBezier)
	// converting first makes it splittable
	_, _, err = h.ToBezier().Split(0.5)
	assert.NoError(t, err)
}

func TestSplitExtrapolates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(1, 1), splines.P(2, 1), splines.P(3, 0))
	pre, _, err := s.Split(1.5)
	if err != nil {
		t.Fatalf("Expected extrapolating split to succeed: %v", err)
	}
	if !approx(pre.Eval(1), s.Eval(1.5), 1e-9) {
		t.Errorf("Expected pre-segment end to match extrapolated curve point")
	}
}

func TestDifferentiate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(1, 3), splines.P(3, -1), splines.P(4, 2))
	d := s.Differentiate()
	for tt := 0.0; tt <= 1.0; tt += 0.25 {
		if !approx(d.Eval(tt), s.EvalDerivative(tt), 1e-9) {
			t.Errorf("derivative curve differs at t=%g", tt)
		}
	}
	// hodograph starts at 3(p1-p0)
	if !approx(d.Eval(0), splines.P(3, 9), 1e-9) {
		t.Errorf("Expected derivative start (3,9), got %v", d.Eval(0))
	}
}

func TestBezierFromPolynomial(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(1, 3), splines.P(3, -1), splines.P(4, 2))
	r := BezierFromPolynomial(s.Polynomial())
	for i := 0; i < 4; i++ {
		if !approx(r.Point(i), s.Point(i), 1e-9) {
			t.Errorf("reconstructed hull point %d is %v, want %v", i, r.Point(i), s.Point(i))
		}
	}
}

func TestWithPoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(1, 1), splines.P(1, 0))
	m := s.WithPoint(3, splines.P(2, 0))
	if s.Point(3) != splines.P(1, 0) {
		t.Errorf("Expected receiver to be unchanged")
	}
	if m.Eval(1) != splines.P(2, 0) {
		t.Errorf("Expected new segment to end at the replaced point")
	}
}

func TestPointIndexPanics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(1, 1), splines.P(1, 0))
	assert.Panics(t, func() { s.Point(4) })
	assert.Panics(t, func() { s.WithPoint(-1, splines.P(0, 0)) })
}

func TestMappedCommutesWithEval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rot := splines.Rotation(30 * splines.Deg2Rad).Combine(splines.Translation(splines.P(2, -1)))
	s := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(1, 1), splines.P(1, 0))
	m := s.Mapped(rot.Transform)
	for tt := 0.0; tt <= 1.0; tt += 0.25 {
		if !approx(m.Eval(tt), rot.Transform(s.Eval(tt)), 1e-9) {
			t.Errorf("affine map does not commute with evaluation at t=%g", tt)
		}
	}
}

func TestLerpSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(1, 1), splines.P(1, 0))
	b := Bezier(splines.P(2, 0), splines.P(2, 1), splines.P(3, 1), splines.P(3, 0))
	m, err := Lerp(a, b, 0.5)
	assert.NoError(t, err)
	assert.True(t, approx(m.Point(0), splines.P(1, 0), 1e-12))
	_, err = Lerp(a, b.ToHermite(), 0.5)
	assert.ErrorIs(t, err, ErrFamilyMismatch)
}

func TestSlerpSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Bezier(splines.P(0, 0), splines.P(1, 0), splines.P(2, 0), splines.P(3, 0))
	b := Bezier(splines.P(0, 0), splines.P(0, 1), splines.P(0, 2), splines.P(0, 3))
	m, err := Slerp(a, b, 0.5)
	assert.NoError(t, err)
	// blended start tangent keeps unit length and sweeps to the diagonal
	tan := m.Point(1).Minus(m.Point(0))
	assert.InDelta(t, 1.0, math.Sqrt(tan.Dot(tan)), 1e-9)
	assert.InDelta(t, tan.X(), tan.Y(), 1e-9)
	_, err = Slerp(a.ToCatmullRom(), b, 0.5)
	assert.ErrorIs(t, err, ErrNotBezier)
}

func TestQuadBezier(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	q := QuadBezier(splines.P(0, 0), splines.P(1, 2), splines.P(2, 0))
	if !approx(q.Eval(0), splines.P(0, 0), 1e-12) || !approx(q.Eval(1), splines.P(2, 0), 1e-12) {
		t.Errorf("Expected quadratic endpoints to be hit exactly")
	}
	if !approx(q.Eval(0.5), splines.P(1, 1), 1e-12) {
		t.Errorf("Expected midpoint (1,1), got %v", q.Eval(0.5))
	}
	pre, post := q.Split(0.5)
	for u := 0.0; u <= 1.0; u += 0.25 {
		if !approx(pre.Eval(u), q.Eval(u*0.5), 1e-9) {
			t.Errorf("quad pre-segment differs at u=%g", u)
		}
		if !approx(post.Eval(u), q.Eval(0.5+u*0.5), 1e-9) {
			t.Errorf("quad post-segment differs at u=%g", u)
		}
	}
	d := q.Differentiate()
	if !approx(d.Eval(0), q.EvalDerivative(0), 1e-12) {
		t.Errorf("quad derivative line differs at 0")
	}
}

func TestBezierNAgainstCubic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []splines.Pair{splines.P(0, 0), splines.P(1, 3), splines.P(3, -1), splines.P(4, 2)}
	bn, err := NewBezierN(pts...)
	if err != nil {
		t.Fatalf("Expected construction to succeed: %v", err)
	}
	cubic := Bezier(pts[0], pts[1], pts[2], pts[3])
	for tt := 0.0; tt <= 1.0; tt += 0.1 {
		if !approx(bn.Eval(tt), cubic.Eval(tt), 1e-9) {
			t.Errorf("degree-3 BezierN differs from cubic at t=%g", tt)
		}
		if !approx(bn.EvalDerivative(tt), cubic.EvalDerivative(tt), 1e-9) {
			t.Errorf("degree-3 BezierN derivative differs at t=%g", tt)
		}
	}
}

func TestBezierNQuintic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	bn, err := NewBezierN(
		splines.P(0, 0), splines.P(1, 2), splines.P(2, -1),
		splines.P(3, 3), splines.P(4, 0), splines.P(5, 1),
	)
	if err != nil {
		t.Fatalf("Expected construction to succeed: %v", err)
	}
	assert.Equal(t, 5, bn.Degree())
	if !approx(bn.Eval(0), splines.P(0, 0), 1e-12) || !approx(bn.Eval(1), splines.P(5, 1), 1e-12) {
		t.Errorf("Expected endpoints to be interpolated")
	}
	pre, post := bn.Split(0.4)
	for u := 0.0; u <= 1.0; u += 0.2 {
		if !approx(pre.Eval(u), bn.Eval(u*0.4), 1e-9) {
			t.Errorf("quintic pre-segment differs at u=%g", u)
		}
		if !approx(post.Eval(u), bn.Eval(0.4+u*0.6), 1e-9) {
			t.Errorf("quintic post-segment differs at u=%g", u)
		}
	}
	d := bn.Differentiate()
	assert.Equal(t, 4, d.Degree())
	const h = 1e-6
	for tt := 0.1; tt < 1; tt += 0.2 {
		numeric := bn.Eval(tt + h).Minus(bn.Eval(tt - h)).Scaled(1 / (2 * h))
		if !approx(d.Eval(tt), numeric, 1e-3) {
			t.Errorf("hodograph differs from numeric derivative at t=%g", tt)
		}
	}
}

func TestBezierNTooFewPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewBezierN(splines.P(0, 0))
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestTripleSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Bezier(
		splines.P3(0, 0, 0), splines.P3(0, 1, 1),
		splines.P3(1, 1, 2), splines.P3(1, 0, 3),
	)
	got := s.Eval(0.5)
	if !splines.Is0(got.X()-0.5) || !splines.Is0(got.Y()-0.75) || !splines.Is0(got.Z()-1.5) {
		t.Errorf("Expected 3D midpoint (0.5,0.75,1.5), got %v", got)
	}
}
