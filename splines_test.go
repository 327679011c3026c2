package splines

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if !Is1(1.00000002) {
		t.Errorf("Expected value to count as 1, does not")
	}
	if Zap(0.00000003) != 0 {
		t.Errorf("Expected value to be zapped to 0, is not")
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p.Plus(q)
	if !r.IsOrigin() {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	if p.Minus(q) != P(6, 4) {
		t.Errorf("Expected p - q to be (6,4), is %v", p.Minus(q))
	}
	if p.Dot(q) != -13 {
		t.Errorf("Expected p . q to be -13, is %g", p.Dot(q))
	}
}

func TestTripleBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := P3(1, 2, 3)
	w := P3(-1, -2, -3)
	if !v.Plus(w).Equal(Triple{}) {
		t.Errorf("Expected v + w to be origin, is %v", v.Plus(w))
	}
	if v.Scaled(2).X() != 2 {
		t.Errorf("Expected scaled x to be 2, is %g", v.Scaled(2).X())
	}
	if v.Dot(w) != -14 {
		t.Errorf("Expected v . w to be -14, is %g", v.Dot(w))
	}
}

func TestLerp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Lerp(P(0, 0), P(2, 4), 0.5)
	if !m.Equal(P(1, 2)) {
		t.Errorf("Expected midpoint (1,2), is %v", m)
	}
	e := Lerp(P(0, 0), P(1, 0), 2.0) // extrapolates
	if !e.Equal(P(2, 0)) {
		t.Errorf("Expected extrapolation (2,0), is %v", e)
	}
}

func TestSlerp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := P(1, 0)
	b := P(0, 1)
	m := Slerp(a, b, 0.5)
	if !Is1(math.Sqrt(m.Dot(m))) {
		t.Errorf("Expected slerp midpoint on unit circle, is %v", m)
	}
	if !Is0(m.X() - m.Y()) {
		t.Errorf("Expected slerp midpoint on diagonal, is %v", m)
	}
	if !Slerp(a, b, 0).Equal(a) || !Slerp(a, b, 1).Equal(b) {
		t.Errorf("Expected slerp to interpolate end vectors")
	}
	// parallel vectors degrade to lerp
	if !Slerp(P(1, 0), P(3, 0), 0.5).Equal(P(2, 0)) {
		t.Errorf("Expected parallel slerp to be lerp")
	}
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 1).Shifted(P(-1, -1)).IsOrigin() {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
	if !P(1, 0).Rotated(180 * Deg2Rad).Shifted(P(1, 0)).IsOrigin() {
		t.Errorf("Expected result to be origin, is not")
	}
}

func TestScaling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	S := Scaling(2, 3)
	if !S.Transform(P(1, 1)).Equal(P(2, 3)) {
		t.Errorf("Expected (1,1) scaled to (2,3), is %v", S.Transform(P(1, 1)))
	}
}

func TestCombine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T1 := Translation(P(1, 0))
	T2 := Translation(P(0, 1))
	c := T1.Combine(T2)
	if !c.Transform(Origin).Equal(P(1, 1)) {
		t.Errorf("Expected combined translation to move origin to (1,1)")
	}
}
