package planner

import (
	"math"

	"github.com/paulmach/orb"
)

// pruneContained removes obstacles that are fully covered by a convex
// obstacle (rectangle or circle) of the same set. A covered shape can never
// change a point or segment answer, so the result is equivalent to the input.
func pruneContained(obstacles []Obstacle) []Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	contained := make([]bool, len(obstacles))
	for i := range obstacles {
		for j := range obstacles {
			if i == j || contained[j] {
				continue
			}
			if coveredBy(obstacles[i], obstacles[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Obstacle, 0, len(obstacles))
	for i, o := range obstacles {
		if !contained[i] {
			result = append(result, o)
		}
	}
	return result
}

// coveredBy checks if obstacle a lies entirely inside the convex obstacle b.
func coveredBy(a, b Obstacle) bool {
	switch b := b.(type) {
	case Rectangle:
		return isBoundContained(a.Bound(), b.Bound())
	case Circle:
		switch a := a.(type) {
		case Circle:
			return a.Center.DistanceTo(b.Center)+a.Radius <= b.Radius
		case Rectangle:
			return verticesInCircle(a.ring(), b)
		case Polygon:
			return verticesInCircle(closeRing(a.Vertices), b)
		}
	}
	return false
}

// isBoundContained checks if bounding box a is contained in bounding box b
func isBoundContained(a, b orb.Bound) bool {
	return a.Min.X() >= b.Min.X() && a.Max.X() <= b.Max.X() &&
		a.Min.Y() >= b.Min.Y() && a.Max.Y() <= b.Max.Y()
}

func verticesInCircle(ring orb.Ring, c Circle) bool {
	if len(ring) == 0 {
		return false
	}
	for _, v := range ring {
		if math.Hypot(v.X()-c.Center.X, v.Y()-c.Center.Y) > c.Radius {
			return false
		}
	}
	return true
}
