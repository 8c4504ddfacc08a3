package planner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// defaultCircleRadius is used by circle records that carry no radius.
const defaultCircleRadius = 0.5

// obstacleRecord is the flat tagged record form of an obstacle:
//
//	{"type": "circle", "cx": 1, "cy": 2, "r": 0.5}
//	{"type": "rect", "xmin": 0, "xmax": 1, "ymin": 0, "ymax": 1}
//	{"type": "polygon", "vertices": [[0, 0], [1, 0], [0, 1]]}
type obstacleRecord struct {
	Type     string       `json:"type"`
	CX       float64      `json:"cx"`
	CY       float64      `json:"cy"`
	R        *float64     `json:"r,omitempty"`
	Radius   *float64     `json:"radius,omitempty"`
	XMin     float64      `json:"xmin"`
	XMax     float64      `json:"xmax"`
	YMin     float64      `json:"ymin"`
	YMax     float64      `json:"ymax"`
	Vertices [][2]float64 `json:"vertices,omitempty"`
	Points   [][2]float64 `json:"points,omitempty"`
}

func (r obstacleRecord) obstacle() (Obstacle, error) {
	switch strings.ToLower(r.Type) {
	case "", "circle":
		radius := defaultCircleRadius
		if r.R != nil {
			radius = *r.R
		} else if r.Radius != nil {
			radius = *r.Radius
		}
		return Circle{Center: Configuration{X: r.CX, Y: r.CY}, Radius: radius}, nil
	case "rect", "rectangle":
		return Rectangle{
			Min: Configuration{X: r.XMin, Y: r.YMin},
			Max: Configuration{X: r.XMax, Y: r.YMax},
		}, nil
	case "polygon":
		verts := r.Vertices
		if len(verts) == 0 {
			verts = r.Points
		}
		poly := Polygon{Vertices: make([]Configuration, 0, len(verts))}
		for _, v := range verts {
			poly.Vertices = append(poly.Vertices, Configuration{X: v[0], Y: v[1]})
		}
		return poly, nil
	}
	return nil, errors.Wrapf(ErrUnknownObstacleType, "%q", r.Type)
}

// DecodeObstacles parses a JSON array of tagged obstacle records.
func DecodeObstacles(data []byte) ([]Obstacle, error) {
	var records []obstacleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "failed to parse obstacle records")
	}
	obstacles := make([]Obstacle, 0, len(records))
	for i, r := range records {
		o, err := r.obstacle()
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}

// ParseGeoJSONObstacles converts a GeoJSON feature collection into
// obstacles. Polygon and MultiPolygon features use their outer rings; Point
// features with a numeric "radius" property become circles. Other
// geometries are ignored.
func ParseGeoJSONObstacles(data []byte) ([]Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse feature collection")
	}

	var obstacles []Obstacle
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				obstacles = append(obstacles, polygonFromRing(g[0]))
			}
		case orb.MultiPolygon:
			for _, poly := range g {
				if len(poly) > 0 {
					obstacles = append(obstacles, polygonFromRing(poly[0]))
				}
			}
		case orb.Point:
			if radius := feature.Properties.MustFloat64("radius", -1); radius >= 0 {
				obstacles = append(obstacles, Circle{Center: Configuration{X: g.X(), Y: g.Y()}, Radius: radius})
			}
		}
	}
	return obstacles, nil
}

// polygonFromRing drops the closing vertex of a GeoJSON ring.
func polygonFromRing(ring orb.Ring) Polygon {
	if ring.Closed() && len(ring) > 1 {
		ring = ring[:len(ring)-1]
	}
	poly := Polygon{Vertices: make([]Configuration, 0, len(ring))}
	for _, p := range ring {
		poly.Vertices = append(poly.Vertices, Configuration{X: p.X(), Y: p.Y()})
	}
	return poly
}

// LoadObstacleFiles loads every file matching pattern. Files ending in
// .geojson are read as feature collections, all others as record arrays.
// Files that fail to load are reported in the combined error; obstacles from
// the remaining files are still returned.
func LoadObstacleFiles(pattern string) ([]Obstacle, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "bad obstacle pattern %q", pattern)
	}

	var all []Obstacle
	var errs error
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "failed to read %s", file))
			continue
		}
		var obstacles []Obstacle
		if strings.EqualFold(filepath.Ext(file), ".geojson") {
			obstacles, err = ParseGeoJSONObstacles(data)
		} else {
			obstacles, err = DecodeObstacles(data)
		}
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "failed to load %s", filepath.Base(file)))
			continue
		}
		all = append(all, obstacles...)
	}
	return all, errs
}
