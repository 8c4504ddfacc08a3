package planner

import (
	"slices"
	"time"

	"go.uber.org/multierr"
)

const (
	defaultStepSize       = 1.0
	defaultPlanIter       = 5000
	defaultGoalSampleRate = 0.05
)

// RRTConfig holds the tree growth tuning parameters.
type RRTConfig struct {
	StepSize       float64 `json:"stepSize"`       // max extension length
	MaxIterations  int     `json:"maxIterations"`  // planner iterations before giving up
	GoalSampleRate float64 `json:"goalSampleRate"` // probability of sampling the goal directly
}

// DefaultRRTConfig returns the default tree growth parameters.
func DefaultRRTConfig() RRTConfig {
	return RRTConfig{
		StepSize:       defaultStepSize,
		MaxIterations:  defaultPlanIter,
		GoalSampleRate: defaultGoalSampleRate,
	}
}

// Validate reports every parameter outside its domain.
func (c RRTConfig) Validate() error {
	var err error
	if !(c.StepSize > 0) {
		err = multierr.Append(err, ErrInvalidStepSize)
	}
	if c.MaxIterations < 0 {
		err = multierr.Append(err, ErrInvalidIterations)
	}
	if !(c.GoalSampleRate >= 0 && c.GoalSampleRate <= 1) {
		err = multierr.Append(err, ErrInvalidGoalSampleRate)
	}
	return err
}

// RRTPlanner grows a rapidly-exploring random tree from start with
// goal-biased sampling until a node within one step of the goal can be
// connected to it.
type RRTPlanner struct {
	start  Configuration
	goal   Configuration
	bounds Bounds
	cfg    RRTConfig
	opts   options

	tree *tree[Configuration]
	path []Configuration
	diag Diagnostics
}

// NewRRTPlanner creates a planar RRT planner. It fails only on invalid
// parameters or bounds.
func NewRRTPlanner(start, goal Configuration, bounds Bounds, cfg RRTConfig, opts ...Option) (*RRTPlanner, error) {
	if err := multierr.Combine(validateBounds(bounds.X, bounds.Y), cfg.Validate()); err != nil {
		return nil, err
	}
	return &RRTPlanner{
		start:  start,
		goal:   goal,
		bounds: bounds,
		cfg:    cfg,
		opts:   newOptions(opts),
	}, nil
}

// SetObstacles configures the obstacle set checked by the next Plan call.
func (p *RRTPlanner) SetObstacles(obstacles []Obstacle) {
	field := NewObstacleField(obstacles)
	p.opts.logger.Debugw("obstacles configured",
		"indexed", field.Len(), "pruned", field.Pruned(), "invalid", field.Invalid())
	p.opts.checker = field
}

// samplePoint returns the goal with probability GoalSampleRate, otherwise a
// uniform point inside the bounds.
func (p *RRTPlanner) samplePoint() Configuration {
	if p.opts.rng.Float64() < p.cfg.GoalSampleRate {
		return p.goal
	}
	return p.bounds.Sample(p.opts.rng)
}

// Plan grows the tree for at most MaxIterations rounds. It reports whether
// the goal was connected.
func (p *RRTPlanner) Plan() bool {
	begin := time.Now()
	warnEndpoints(p.opts.logger, p.bounds, p.opts.checker, p.start, p.goal)

	checker := p.opts.checker
	p.tree = newTree(p.start, min(p.cfg.MaxIterations, defaultPlanIter)+2)
	p.path = nil

	success := false
	rejected := 0
	iter := 0
	for ; iter < p.cfg.MaxIterations; iter++ {
		sample := p.samplePoint()
		nearestIdx := p.tree.nearest(sample, squaredDistance)
		nearest := p.tree.nodes[nearestIdx]

		candidate := steer(nearest, sample, p.cfg.StepSize)
		if !checker.IsCollisionFree(nearest, candidate) {
			rejected++
			continue
		}
		candidateIdx := p.tree.add(candidate, nearestIdx, nearest.DistanceTo(candidate))

		if d := candidate.DistanceTo(p.goal); d <= p.cfg.StepSize && checker.IsCollisionFree(candidate, p.goal) {
			goalIdx := p.tree.add(p.goal, candidateIdx, d)
			p.path = p.tree.pathTo(goalIdx)
			success = true
			break
		}
	}
	p.diag = Diagnostics{Success: success, PlanningTime: time.Since(begin), NumNodes: p.tree.len()}

	p.opts.logger.Debugw("rrt planning finished",
		"success", success, "iterations", iter, "nodes", p.tree.len(),
		"rejected", rejected, "waypoints", len(p.path), "elapsed", p.diag.PlanningTime)
	return success
}

// Path returns the last planned path from start to goal, or nil.
func (p *RRTPlanner) Path() []Configuration {
	return slices.Clone(p.path)
}

// PlanningTime returns the wall-clock duration of the last Plan call.
func (p *RRTPlanner) PlanningTime() time.Duration {
	return p.diag.PlanningTime
}

// NumNodes returns the tree size of the last Plan call.
func (p *RRTPlanner) NumNodes() int {
	return p.diag.NumNodes
}

// Diagnostics returns the summary of the last Plan call.
func (p *RRTPlanner) Diagnostics() Diagnostics {
	return p.diag
}

// Nodes returns a copy of the tree nodes; the root is at index 0.
func (p *RRTPlanner) Nodes() []Configuration {
	if p.tree == nil {
		return nil
	}
	return slices.Clone(p.tree.nodes)
}

// Parents returns a copy of the parent index of every tree node; the root has -1.
func (p *RRTPlanner) Parents() []int {
	if p.tree == nil {
		return nil
	}
	return slices.Clone(p.tree.parents)
}

// Edges returns the parent-to-child tree edges in insertion order.
func (p *RRTPlanner) Edges() []Edge {
	if p.tree == nil {
		return nil
	}
	return p.tree.edges()
}

// EdgeSegments returns the tree edges as coordinate pairs for visualization.
func (p *RRTPlanner) EdgeSegments() [][2]Configuration {
	if p.tree == nil {
		return nil
	}
	return edgeSegments(p.tree.nodes, p.tree.edges())
}
