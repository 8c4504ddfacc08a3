package planner

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// segmentsIntersect checks if segments p1p2 and p3p4 touch or cross.
// Shared endpoints and collinear overlaps count as an intersection.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Check for collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3.X()-p1.X())*(p2.Y()-p1.Y()) - (p2.X()-p1.X())*(p3.Y()-p1.Y())
}

// onSegment checks if point q lies within the bounding box of segment pr
func onSegment(p, r, q orb.Point) bool {
	return q.X() <= math.Max(p.X(), r.X()) && q.X() >= math.Min(p.X(), r.X()) &&
		q.Y() <= math.Max(p.Y(), r.Y()) && q.Y() >= math.Min(p.Y(), r.Y())
}

// closeRing returns the vertices as a ring whose last point repeats the first.
func closeRing(vertices []Configuration) orb.Ring {
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, v.orbPoint())
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// ringContains checks if a point is inside a ring; boundary points are inside.
func ringContains(ring orb.Ring, p orb.Point) bool {
	if len(ring) < 4 {
		return false
	}
	return planar.RingContains(ring, p)
}

// segmentHitsRing checks if segment ab enters, crosses or touches the region
// enclosed by ring. A segment lying entirely inside has its endpoints inside.
func segmentHitsRing(a, b orb.Point, ring orb.Ring) bool {
	if len(ring) < 4 {
		return false
	}
	if ringContains(ring, a) || ringContains(ring, b) {
		return true
	}
	for i := 0; i < len(ring)-1; i++ {
		if segmentsIntersect(a, b, ring[i], ring[i+1]) {
			return true
		}
	}
	return false
}

// segmentHitsCircle checks if segment ab passes within radius of center.
func segmentHitsCircle(a, b, center orb.Point, radius float64) bool {
	return planar.DistanceFromSegment(a, b, center) <= radius
}
