package planner

import (
	"slices"
	"time"

	"go.uber.org/multierr"
)

const defaultStepSize3D = 0.5

// RRT3DConfig holds the volumetric tree growth parameters.
type RRT3DConfig struct {
	StepSize      float64 `json:"stepSize"`      // max extension length
	MaxIterations int     `json:"maxIterations"` // planner iterations before giving up
}

// DefaultRRT3DConfig returns the default volumetric parameters.
func DefaultRRT3DConfig() RRT3DConfig {
	return RRT3DConfig{StepSize: defaultStepSize3D, MaxIterations: defaultPlanIter}
}

// Validate reports every parameter outside its domain.
func (c RRT3DConfig) Validate() error {
	var err error
	if !(c.StepSize > 0) {
		err = multierr.Append(err, ErrInvalidStepSize)
	}
	if c.MaxIterations < 0 {
		err = multierr.Append(err, ErrInvalidIterations)
	}
	return err
}

// RRT3DResult bundles the outcome of one volumetric planning run.
type RRT3DResult struct {
	Success bool              `json:"success"`
	Path    []Configuration3D `json:"path"`  // nil on failure
	Nodes   []Configuration3D `json:"nodes"` // full tree, root first
	Time    time.Duration     `json:"time"`
}

// RRT3DPlanner grows a tree in three dimensions.
//
// Unlike the planar planners it has no obstacle model: samples are always
// uniform (no goal bias), a steered candidate is rejected only when it falls
// outside the bounds, and no segment is collision checked. The goal is
// connected as soon as a new node is strictly closer than StepSize to it.
type RRT3DPlanner struct {
	start  Configuration3D
	goal   Configuration3D
	bounds Bounds3D
	cfg    RRT3DConfig
	opts   options

	tree   *tree[Configuration3D]
	result RRT3DResult
}

// NewRRT3DPlanner creates a volumetric RRT planner. Collision checker
// options are ignored.
func NewRRT3DPlanner(start, goal Configuration3D, bounds Bounds3D, cfg RRT3DConfig, opts ...Option) (*RRT3DPlanner, error) {
	if err := multierr.Combine(validateBounds(bounds.X, bounds.Y, bounds.Z), cfg.Validate()); err != nil {
		return nil, err
	}
	return &RRT3DPlanner{
		start:  start,
		goal:   goal,
		bounds: bounds,
		cfg:    cfg,
		opts:   newOptions(opts),
	}, nil
}

func distance3D(a, b Configuration3D) float64 {
	return a.DistanceTo(b)
}

// Plan grows the tree for at most MaxIterations rounds.
func (p *RRT3DPlanner) Plan() RRT3DResult {
	begin := time.Now()
	if !p.bounds.Contains(p.start) || !p.bounds.Contains(p.goal) {
		p.opts.logger.Warnw("endpoint outside bounds", "start", p.start, "goal", p.goal)
	}

	p.tree = newTree(p.start, min(p.cfg.MaxIterations, defaultPlanIter)+2)

	success := false
	var path []Configuration3D
	rejected := 0
	iter := 0
	for ; iter < p.cfg.MaxIterations; iter++ {
		sample := p.bounds.Sample(p.opts.rng)
		nearestIdx := p.tree.nearest(sample, distance3D)
		nearest := p.tree.nodes[nearestIdx]

		candidate := steer3D(nearest, sample, p.cfg.StepSize)
		if !p.bounds.Contains(candidate) {
			rejected++
			continue
		}
		candidateIdx := p.tree.add(candidate, nearestIdx, nearest.DistanceTo(candidate))

		if d := candidate.DistanceTo(p.goal); d < p.cfg.StepSize {
			goalIdx := p.tree.add(p.goal, candidateIdx, d)
			path = p.tree.pathTo(goalIdx)
			success = true
			break
		}
	}

	p.result = RRT3DResult{
		Success: success,
		Path:    path,
		Nodes:   slices.Clone(p.tree.nodes),
		Time:    time.Since(begin),
	}
	p.opts.logger.Debugw("rrt3d planning finished",
		"success", success, "iterations", iter, "nodes", p.tree.len(),
		"rejected", rejected, "waypoints", len(path), "elapsed", p.result.Time)
	return p.result
}

// PlanningTime returns the wall-clock duration of the last Plan call.
func (p *RRT3DPlanner) PlanningTime() time.Duration {
	return p.result.Time
}

// NumNodes returns the tree size of the last Plan call.
func (p *RRT3DPlanner) NumNodes() int {
	return len(p.result.Nodes)
}

// Parents returns a copy of the parent index of every tree node; the root has -1.
func (p *RRT3DPlanner) Parents() []int {
	if p.tree == nil {
		return nil
	}
	return slices.Clone(p.tree.parents)
}

// Edges returns the parent-to-child tree edges in insertion order.
func (p *RRT3DPlanner) Edges() []Edge {
	if p.tree == nil {
		return nil
	}
	return p.tree.edges()
}
