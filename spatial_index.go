package planner

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// boxPadding widens every stored and queried box so that degenerate
// (zero-width) shapes and touching boxes still intersect in the R-tree.
const boxPadding = 1e-9

// obstacleEntry wraps an obstacle for R-tree storage
type obstacleEntry struct {
	shape Obstacle
	ring  orb.Ring // outline of rectangles and polygons
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

func newObstacleEntry(o Obstacle) (*obstacleEntry, error) {
	bbox, err := paddedRect(o.Bound())
	if err != nil {
		return nil, err
	}
	e := &obstacleEntry{shape: o, bbox: bbox}
	switch o := o.(type) {
	case Rectangle:
		e.ring = o.ring()
	case Polygon:
		e.ring = closeRing(o.Vertices)
	}
	return e, nil
}

// containsPoint reports whether p lies inside the obstacle, boundary included.
func (e *obstacleEntry) containsPoint(p orb.Point) bool {
	switch o := e.shape.(type) {
	case Circle:
		dx := p.X() - o.Center.X
		dy := p.Y() - o.Center.Y
		return dx*dx+dy*dy <= o.Radius*o.Radius
	case Rectangle:
		return o.Bound().Contains(p)
	case Polygon:
		return ringContains(e.ring, p)
	}
	return false
}

// blocksSegment reports whether the segment ab touches the obstacle.
func (e *obstacleEntry) blocksSegment(a, b orb.Point) bool {
	switch o := e.shape.(type) {
	case Circle:
		return segmentHitsCircle(a, b, o.Center.orbPoint(), o.Radius)
	case Rectangle, Polygon:
		return segmentHitsRing(a, b, e.ring)
	}
	return false
}

// spatialIndex manages obstacle bounding box queries
type spatialIndex struct {
	tree *rtreego.Rtree
}

func newSpatialIndex(entries []*obstacleEntry) *spatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	for _, e := range entries {
		tree.Insert(e)
	}
	return &spatialIndex{tree: tree}
}

// query returns the obstacles whose bounding box intersects b.
func (si *spatialIndex) query(b orb.Bound) []*obstacleEntry {
	bbox, err := paddedRect(b)
	if err != nil {
		return nil
	}
	results := si.tree.SearchIntersect(bbox)
	entries := make([]*obstacleEntry, 0, len(results))
	for _, item := range results {
		entries = append(entries, item.(*obstacleEntry))
	}
	return entries
}

// paddedRect converts an orb bound into an rtreego rectangle grown by boxPadding.
func paddedRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X() - boxPadding, b.Min.Y() - boxPadding},
		[]float64{b.Max.X() - b.Min.X() + 2*boxPadding, b.Max.Y() - b.Min.Y() + 2*boxPadding},
	)
}

// segmentBound returns the bounding box of segment ab.
func segmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{Min: a, Max: a}.Extend(b)
}
