package planner

import (
	"github.com/paulmach/orb"
)

// Obstacle is one shape of an obstacle set. The set of shapes is closed:
// Circle, Rectangle and Polygon.
type Obstacle interface {
	// Bound returns the axis-aligned bounding box of the shape.
	Bound() orb.Bound
	obstacle()
}

// Circle is a disc obstacle.
type Circle struct {
	Center Configuration `json:"center"`
	Radius float64       `json:"radius"`
}

// Rectangle is an axis-aligned box obstacle.
type Rectangle struct {
	Min Configuration `json:"min"`
	Max Configuration `json:"max"`
}

// Polygon is a simple polygon given by its ordered vertices.
type Polygon struct {
	Vertices []Configuration `json:"vertices"`
}

func (Circle) obstacle()    {}
func (Rectangle) obstacle() {}
func (Polygon) obstacle()   {}

// Bound implements Obstacle.
func (c Circle) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.Center.X - c.Radius, c.Center.Y - c.Radius},
		Max: orb.Point{c.Center.X + c.Radius, c.Center.Y + c.Radius},
	}
}

// Bound implements Obstacle.
func (r Rectangle) Bound() orb.Bound {
	return orb.Bound{Min: r.Min.orbPoint(), Max: r.Max.orbPoint()}
}

// Bound implements Obstacle.
func (p Polygon) Bound() orb.Bound {
	return closeRing(p.Vertices).Bound()
}

// ring returns the rectangle outline as a closed ring.
func (r Rectangle) ring() orb.Ring {
	return orb.Ring{
		{r.Min.X, r.Min.Y},
		{r.Max.X, r.Min.Y},
		{r.Max.X, r.Max.Y},
		{r.Min.X, r.Max.Y},
		{r.Min.X, r.Min.Y},
	}
}
