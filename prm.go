package planner

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

const (
	defaultNumSamples = 5000
	defaultKNeighbors = 10

	// Rejection sampling gives up after this many draws per requested sample
	// and continues with the samples accepted so far.
	maxAttemptsPerSample = 100
)

// PRMConfig holds the roadmap tuning parameters.
type PRMConfig struct {
	NumSamples int `json:"numSamples"` // free-space samples to draw
	KNeighbors int `json:"kNeighbors"` // candidate neighbors per node
}

// DefaultPRMConfig returns the default roadmap parameters.
func DefaultPRMConfig() PRMConfig {
	return PRMConfig{NumSamples: defaultNumSamples, KNeighbors: defaultKNeighbors}
}

// Validate reports every parameter outside its domain.
func (c PRMConfig) Validate() error {
	var err error
	if c.NumSamples < 0 {
		err = multierr.Append(err, ErrInvalidSampleCount)
	}
	if c.KNeighbors < 1 {
		err = multierr.Append(err, ErrInvalidNeighborCount)
	}
	return err
}

// PRMPlanner is a probabilistic roadmap planner. Each Plan call samples a
// fresh roadmap, appends start and goal as its last two nodes, connects
// every node to its k nearest collision-free candidates and runs Dijkstra
// from start to goal.
type PRMPlanner struct {
	start  Configuration
	goal   Configuration
	bounds Bounds
	cfg    PRMConfig
	opts   options

	nodes   []Configuration
	roadmap *graph
	edges   []Edge
	path    []Configuration
	diag    Diagnostics
}

// NewPRMPlanner creates a roadmap planner. It fails only on invalid
// parameters or bounds.
func NewPRMPlanner(start, goal Configuration, bounds Bounds, cfg PRMConfig, opts ...Option) (*PRMPlanner, error) {
	if err := multierr.Combine(validateBounds(bounds.X, bounds.Y), cfg.Validate()); err != nil {
		return nil, err
	}
	return &PRMPlanner{
		start:  start,
		goal:   goal,
		bounds: bounds,
		cfg:    cfg,
		opts:   newOptions(opts),
	}, nil
}

// SetObstacles configures the obstacle set checked by the next Plan call.
func (p *PRMPlanner) SetObstacles(obstacles []Obstacle) {
	field := NewObstacleField(obstacles)
	p.opts.logger.Debugw("obstacles configured",
		"indexed", field.Len(), "pruned", field.Pruned(), "invalid", field.Invalid())
	p.opts.checker = field
}

// Plan builds the roadmap and searches it. It reports whether start and
// goal are connected.
func (p *PRMPlanner) Plan() bool {
	begin := time.Now()
	warnEndpoints(p.opts.logger, p.bounds, p.opts.checker, p.start, p.goal)

	p.sampleNodes()
	p.buildRoadmap()

	n := len(p.nodes)
	route, cost, ok := shortestPath(p.roadmap, n-2, n-1)
	if ok {
		p.path = lo.Map(route, func(i int, _ int) Configuration { return p.nodes[i] })
	} else {
		p.path = nil
	}
	p.diag = Diagnostics{Success: ok, PlanningTime: time.Since(begin), NumNodes: n}

	p.opts.logger.Debugw("prm planning finished",
		"success", ok, "nodes", n, "edges", len(p.edges),
		"waypoints", len(p.path), "cost", cost, "elapsed", p.diag.PlanningTime)
	return ok
}

// sampleNodes draws free-space samples and appends start and goal.
func (p *PRMPlanner) sampleNodes() {
	want := p.cfg.NumSamples
	p.nodes = make([]Configuration, 0, want+2)

	attempts := 0
	maxAttempts := want * maxAttemptsPerSample
	for len(p.nodes) < want && attempts < maxAttempts {
		attempts++
		c := p.bounds.Sample(p.opts.rng)
		if !p.opts.checker.PointInAnyObstacle(c) {
			p.nodes = append(p.nodes, c)
		}
	}
	if len(p.nodes) < want {
		p.opts.logger.Warnw("sampling budget exhausted",
			"accepted", len(p.nodes), "requested", want, "attempts", attempts)
	}

	p.nodes = append(p.nodes, p.start, p.goal)
}

type candidate struct {
	index int
	dist  float64
}

// buildRoadmap connects each node to its k nearest neighbors when the
// straight segment between them is collision free. Each unordered pair is
// tested at most once.
func (p *PRMPlanner) buildRoadmap() {
	n := len(p.nodes)
	k := min(p.cfg.KNeighbors, n-1)
	p.roadmap = newGraph(n)
	p.edges = make([]Edge, 0, n*k/2)

	tested := make(map[[2]int]struct{}, n*k)
	cands := make([]candidate, 0, n)
	rejected := 0

	for i := 0; i < n; i++ {
		cands = cands[:0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			cands = append(cands, candidate{index: j, dist: p.nodes[i].DistanceTo(p.nodes[j])})
		}
		slices.SortStableFunc(cands, func(a, b candidate) int {
			return cmp.Compare(a.dist, b.dist)
		})

		for _, c := range cands[:k] {
			key := [2]int{min(i, c.index), max(i, c.index)}
			if _, seen := tested[key]; seen {
				continue
			}
			tested[key] = struct{}{}

			if !p.opts.checker.IsCollisionFree(p.nodes[i], p.nodes[c.index]) {
				rejected++
				continue
			}
			p.roadmap.addEdge(i, c.index, c.dist)
			p.edges = append(p.edges, Edge{From: key[0], To: key[1], Weight: c.dist})
		}
	}

	p.opts.logger.Debugw("roadmap built",
		"nodes", n, "edges", len(p.edges), "rejectedEdges", rejected)
}

// Path returns the last planned path from start to goal, or nil.
func (p *PRMPlanner) Path() []Configuration {
	return slices.Clone(p.path)
}

// PlanningTime returns the wall-clock duration of the last Plan call.
func (p *PRMPlanner) PlanningTime() time.Duration {
	return p.diag.PlanningTime
}

// NumNodes returns the roadmap size of the last Plan call, start and goal included.
func (p *PRMPlanner) NumNodes() int {
	return p.diag.NumNodes
}

// Diagnostics returns the summary of the last Plan call.
func (p *PRMPlanner) Diagnostics() Diagnostics {
	return p.diag
}

// Nodes returns a copy of the roadmap nodes. Start and goal are the last two.
func (p *PRMPlanner) Nodes() []Configuration {
	return slices.Clone(p.nodes)
}

// Edges returns a copy of the accepted roadmap edges, each recorded once.
func (p *PRMPlanner) Edges() []Edge {
	return slices.Clone(p.edges)
}

// EdgeSegments returns the roadmap edges as coordinate pairs for visualization.
func (p *PRMPlanner) EdgeSegments() [][2]Configuration {
	return edgeSegments(p.nodes, p.edges)
}

func edgeSegments(nodes []Configuration, edges []Edge) [][2]Configuration {
	lines := make([][2]Configuration, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, [2]Configuration{nodes[e.From], nodes[e.To]})
	}
	return lines
}
