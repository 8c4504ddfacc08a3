package planner

// CollisionChecker is the collision oracle consumed by the planar planners.
// Both methods must be pure functions of their arguments and the obstacle
// set the checker was built from.
type CollisionChecker interface {
	// PointInAnyObstacle reports whether c lies inside (or on) an obstacle.
	PointInAnyObstacle(c Configuration) bool
	// IsCollisionFree reports whether the straight segment ab touches no obstacle.
	IsCollisionFree(a, b Configuration) bool
}

// ObstacleField is the reference CollisionChecker over a static obstacle
// set. Obstacles are indexed by bounding box in an R-tree so each query
// only runs exact tests against nearby shapes.
type ObstacleField struct {
	entries []*obstacleEntry
	index   *spatialIndex
	pruned  int
	invalid int
}

// NewObstacleField indexes obstacles. Degenerate shapes (negative radius,
// polygons with fewer than three vertices, inverted rectangles) are skipped,
// and shapes fully covered by a convex obstacle are pruned.
func NewObstacleField(obstacles []Obstacle) *ObstacleField {
	f := &ObstacleField{}
	valid := make([]Obstacle, 0, len(obstacles))
	for _, o := range obstacles {
		if !wellFormed(o) {
			f.invalid++
			continue
		}
		valid = append(valid, o)
	}
	kept := pruneContained(valid)
	f.pruned = len(valid) - len(kept)
	for _, o := range kept {
		e, err := newObstacleEntry(o)
		if err != nil {
			f.invalid++
			continue
		}
		f.entries = append(f.entries, e)
	}
	f.index = newSpatialIndex(f.entries)
	return f
}

// Len returns the number of indexed obstacles.
func (f *ObstacleField) Len() int {
	return len(f.entries)
}

// Pruned returns the number of obstacles dropped because another obstacle covers them.
func (f *ObstacleField) Pruned() int {
	return f.pruned
}

// Invalid returns the number of degenerate obstacles that were skipped.
func (f *ObstacleField) Invalid() int {
	return f.invalid
}

// PointInAnyObstacle implements CollisionChecker.
func (f *ObstacleField) PointInAnyObstacle(c Configuration) bool {
	p := c.orbPoint()
	for _, e := range f.index.query(segmentBound(p, p)) {
		if e.containsPoint(p) {
			return true
		}
	}
	return false
}

// IsCollisionFree implements CollisionChecker.
func (f *ObstacleField) IsCollisionFree(a, b Configuration) bool {
	pa, pb := a.orbPoint(), b.orbPoint()
	for _, e := range f.index.query(segmentBound(pa, pb)) {
		if e.blocksSegment(pa, pb) {
			return false
		}
	}
	return true
}

func wellFormed(o Obstacle) bool {
	switch o := o.(type) {
	case Circle:
		return o.Radius >= 0
	case Rectangle:
		return o.Min.X <= o.Max.X && o.Min.Y <= o.Max.Y
	case Polygon:
		return len(closeRing(o.Vertices)) >= 4
	}
	return false
}

// freeSpace is the checker used before any obstacle set is configured.
type freeSpace struct{}

func (freeSpace) PointInAnyObstacle(Configuration) bool { return false }

func (freeSpace) IsCollisionFree(_, _ Configuration) bool { return true }
