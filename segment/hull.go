package segment

import (
	"sort"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/splines"
)

// Control-hull overlap pretest. Every point of a Bézier segment lies
// inside the convex hull of its control points, so two segments whose
// hulls do not intersect cannot intersect either. This is the standard
// coarse rejection step before any expensive curve-curve intersection.
// 2D only: polygon clipping has no 3D reading.

// HullsOverlap reports whether the convex hulls of two 2D control-point
// sets intersect with non-empty area. Hulls that merely touch in a point
// or share a boundary edge report false.
func HullsOverlap(a, b []splines.Pair) bool {
	ca := hullContour(a)
	cb := hullContour(b)
	if len(ca) < 3 || len(cb) < 3 {
		return false // degenerate hull has no area to overlap with
	}
	if !ca.BoundingBox().Overlaps(cb.BoundingBox()) {
		return false
	}
	clipped := polyclip.Polygon{ca}.Construct(polyclip.INTERSECTION, polyclip.Polygon{cb})
	for _, contour := range clipped {
		if len(contour) >= 3 {
			tracer().Debugf("hulls overlap in %d-gon", len(contour))
			return true
		}
	}
	return false
}

// ControlHullsOverlap is the pretest for two 2D cubic segments. Hermite
// segments are converted to their Bézier hull first, since tangent values
// are not hull points.
func ControlHullsOverlap(a, b Cubic[splines.Pair]) bool {
	pa := a.ToBezier().pts
	pb := b.ToBezier().pts
	return HullsOverlap(pa[:], pb[:])
}

// hullContour computes the convex hull of a point set as a polyclip
// contour, by Andrew's monotone chain. Collinear points are dropped.
func hullContour(pts []splines.Pair) polyclip.Contour {
	ps := make([]splines.Pair, len(pts))
	copy(ps, pts)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X() != ps[j].X() {
			return ps[i].X() < ps[j].X()
		}
		return ps[i].Y() < ps[j].Y()
	})
	cross := func(o, a, b splines.Pair) float64 {
		return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
	}
	var hull []splines.Pair
	// lower chain, then upper chain
	for _, p := range ps {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	if len(hull) > 1 {
		hull = hull[:len(hull)-1] // last point repeats the first
	}
	contour := make(polyclip.Contour, len(hull))
	for i, p := range hull {
		contour[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return contour
}
