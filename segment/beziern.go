package segment

import (
	"fmt"

	"github.com/npillmayer/splines"
)

// BezierN is a Bézier segment of arbitrary degree (point count - 1).
// Unlike the fixed-degree segments it carries no polynomial form;
// evaluation runs De Casteljau's recursion directly, which is numerically
// the most stable way to evaluate high-degree Bernstein bases.
type BezierN[T splines.Vec[T]] struct {
	pts []T
}

// NewBezierN creates a generalized Bézier segment. Fewer than 2 control
// points yield ErrTooFewPoints.
func NewBezierN[T splines.Vec[T]](pts ...T) (BezierN[T], error) {
	if len(pts) < 2 {
		return BezierN[T]{}, fmt.Errorf("%w, got %d", ErrTooFewPoints, len(pts))
	}
	own := make([]T, len(pts))
	copy(own, pts)
	return BezierN[T]{pts: own}, nil
}

// Degree returns the polynomial degree of the segment.
func (b BezierN[T]) Degree() int {
	return len(b.pts) - 1
}

// Point returns control point i. Panics for an index outside the hull.
func (b BezierN[T]) Point(i int) T {
	if i < 0 || i >= len(b.pts) {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..%d", i, len(b.pts)-1))
	}
	return b.pts[i]
}

// WithPoint returns a new segment with control point i replaced. Panics
// for an index outside the hull.
func (b BezierN[T]) WithPoint(i int, p T) BezierN[T] {
	if i < 0 || i >= len(b.pts) {
		panic(fmt.Sprintf("segment: control point index %d out of range 0..%d", i, len(b.pts)-1))
	}
	pts := make([]T, len(b.pts))
	copy(pts, b.pts)
	pts[i] = p
	return BezierN[T]{pts: pts}
}

// Eval evaluates the segment at parameter t by De Casteljau's recursion.
// Values outside [0,1] extrapolate.
func (b BezierN[T]) Eval(t float64) T {
	buf := make([]T, len(b.pts))
	copy(buf, b.pts)
	for r := len(buf) - 1; r > 0; r-- {
		for i := 0; i < r; i++ {
			buf[i] = splines.Lerp(buf[i], buf[i+1], t)
		}
	}
	return buf[0]
}

// EvalDerivative evaluates the velocity at t.
func (b BezierN[T]) EvalDerivative(t float64) T {
	return b.Differentiate().Eval(t)
}

// Differentiate returns the hodograph: the derivative Bézier of one lower
// degree with points n (p[i+1] - p[i]). For a linear segment the result
// is the constant (single-point degenerate) segment of its velocity.
func (b BezierN[T]) Differentiate() BezierN[T] {
	n := float64(b.Degree())
	pts := make([]T, len(b.pts)-1)
	for i := range pts {
		pts[i] = b.pts[i+1].Minus(b.pts[i]).Scaled(n)
	}
	return BezierN[T]{pts: pts}
}

// Split cuts the segment at t, reusing the De Casteljau triangle: the two
// edges of the triangle are the halves' control points.
func (b BezierN[T]) Split(t float64) (BezierN[T], BezierN[T]) {
	n := len(b.pts)
	buf := make([]T, n)
	copy(buf, b.pts)
	pre := make([]T, n)
	post := make([]T, n)
	pre[0] = buf[0]
	post[n-1] = buf[n-1]
	for r := n - 1; r > 0; r-- {
		for i := 0; i < r; i++ {
			buf[i] = splines.Lerp(buf[i], buf[i+1], t)
		}
		pre[n-1-r+1] = buf[0]
		post[r-1] = buf[r-1]
	}
	return BezierN[T]{pts: pre}, BezierN[T]{pts: post}
}
