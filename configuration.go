package planner

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// Configuration is a point in the planar search space.
type Configuration struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewConfiguration creates a planar configuration.
func NewConfiguration(x, y float64) Configuration {
	return Configuration{X: x, Y: y}
}

// Coords returns the coordinates in axis order.
func (c Configuration) Coords() []float64 {
	return []float64{c.X, c.Y}
}

// DistanceTo calculates the Euclidean distance between two configurations.
func (c Configuration) DistanceTo(other Configuration) float64 {
	return r2.Norm(r2.Sub(c.vec(), other.vec()))
}

func (c Configuration) vec() r2.Vec {
	return r2.Vec{X: c.X, Y: c.Y}
}

func (c Configuration) orbPoint() orb.Point {
	return orb.Point{c.X, c.Y}
}

func configurationFromVec(v r2.Vec) Configuration {
	return Configuration{X: v.X, Y: v.Y}
}

// Configuration3D is a point in the volumetric search space.
type Configuration3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewConfiguration3D creates a volumetric configuration.
func NewConfiguration3D(x, y, z float64) Configuration3D {
	return Configuration3D{X: x, Y: y, Z: z}
}

// Coords returns the coordinates in axis order.
func (c Configuration3D) Coords() []float64 {
	return []float64{c.X, c.Y, c.Z}
}

// DistanceTo calculates the Euclidean distance between two configurations.
func (c Configuration3D) DistanceTo(other Configuration3D) float64 {
	return c.vector().Distance(other.vector())
}

func (c Configuration3D) vector() r3.Vector {
	return r3.Vector{X: c.X, Y: c.Y, Z: c.Z}
}

func configurationFromVector(v r3.Vector) Configuration3D {
	return Configuration3D{X: v.X, Y: v.Y, Z: v.Z}
}

// Range is an inclusive [Min, Max] interval along one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range, endpoints included.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

// Bounds is the axis-aligned sampling domain of the planar planners.
type Bounds struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// NewBounds creates planar bounds from per-axis limits.
func NewBounds(xmin, xmax, ymin, ymax float64) Bounds {
	return Bounds{X: Range{Min: xmin, Max: xmax}, Y: Range{Min: ymin, Max: ymax}}
}

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c Configuration) bool {
	return b.X.Contains(c.X) && b.Y.Contains(c.Y)
}

// Sample draws a uniform random configuration inside the bounds.
func (b Bounds) Sample(rng *rand.Rand) Configuration {
	x := b.X.sample(rng)
	y := b.Y.sample(rng)
	return Configuration{X: x, Y: y}
}

// Bounds3D is the axis-aligned sampling domain of the volumetric planner.
type Bounds3D struct {
	X Range `json:"x"`
	Y Range `json:"y"`
	Z Range `json:"z"`
}

// NewBounds3D creates volumetric bounds from per-axis limits.
func NewBounds3D(xmin, xmax, ymin, ymax, zmin, zmax float64) Bounds3D {
	return Bounds3D{
		X: Range{Min: xmin, Max: xmax},
		Y: Range{Min: ymin, Max: ymax},
		Z: Range{Min: zmin, Max: zmax},
	}
}

// Contains reports whether c lies inside the bounds.
func (b Bounds3D) Contains(c Configuration3D) bool {
	return b.X.Contains(c.X) && b.Y.Contains(c.Y) && b.Z.Contains(c.Z)
}

// Sample draws a uniform random configuration inside the bounds.
func (b Bounds3D) Sample(rng *rand.Rand) Configuration3D {
	x := b.X.sample(rng)
	y := b.Y.sample(rng)
	z := b.Z.sample(rng)
	return Configuration3D{X: x, Y: y, Z: z}
}

// steer returns the configuration at most step away from "from" in the
// direction of "to". A coincident target returns "from" itself.
func steer(from, to Configuration, step float64) Configuration {
	d := r2.Sub(to.vec(), from.vec())
	dist := r2.Norm(d)
	if dist == 0 {
		return from
	}
	if dist <= step {
		return to
	}
	return configurationFromVec(r2.Add(from.vec(), r2.Scale(step/dist, d)))
}

// steer3D is the volumetric counterpart of steer.
func steer3D(from, to Configuration3D, step float64) Configuration3D {
	d := to.vector().Sub(from.vector())
	dist := d.Norm()
	if dist == 0 {
		return from
	}
	if dist <= step {
		return to
	}
	return configurationFromVector(from.vector().Add(d.Mul(step / dist)))
}
