package planner

import (
	"time"

	"go.uber.org/zap"
)

// Planner is implemented by the planar planners. Plan builds a fresh
// roadmap or tree on every call; a false result means no path was found
// within the configured budget and is not an error.
type Planner interface {
	SetObstacles(obstacles []Obstacle)
	Plan() bool
	Path() []Configuration
	PlanningTime() time.Duration
	NumNodes() int
}

// Diagnostics summarizes the last Plan call.
type Diagnostics struct {
	Success      bool          `json:"success"`
	PlanningTime time.Duration `json:"planningTime"`
	NumNodes     int           `json:"numNodes"`
}

// warnEndpoints logs start and goal configurations that can only lead to
// degenerate results. Planning still proceeds.
func warnEndpoints(logger *zap.SugaredLogger, bounds Bounds, checker CollisionChecker, start, goal Configuration) {
	for _, ep := range []struct {
		name string
		c    Configuration
	}{{"start", start}, {"goal", goal}} {
		if !bounds.Contains(ep.c) {
			logger.Warnw("endpoint outside bounds", "endpoint", ep.name, "x", ep.c.X, "y", ep.c.Y)
		}
		if checker.PointInAnyObstacle(ep.c) {
			logger.Warnw("endpoint inside obstacle", "endpoint", ep.name, "x", ep.c.X, "y", ep.c.Y)
		}
	}
}

func squaredDistance(a, b Configuration) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
