package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

// blockedSpace rejects every point and segment.
type blockedSpace struct{}

func (blockedSpace) PointInAnyObstacle(Configuration) bool { return true }

func (blockedSpace) IsCollisionFree(_, _ Configuration) bool { return false }

func newTestRRT(t *testing.T, cfg RRTConfig, opts ...Option) *RRTPlanner {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t).Sugar())}, opts...)
	p, err := NewRRTPlanner(testStart, testGoal, testBounds, cfg, opts...)
	require.NoError(t, err)
	return p
}

func requireValidTree(t *testing.T, parents []int, numNodes int) {
	t.Helper()
	require.Len(t, parents, numNodes)
	require.Equal(t, -1, parents[0])
	for i := 1; i < len(parents); i++ {
		require.GreaterOrEqual(t, parents[i], 0)
		require.Less(t, parents[i], i, "node %d has a parent inserted after it", i)
	}
}

func TestRRTFreeSpaceSuccessRate(t *testing.T) {
	cfg := RRTConfig{StepSize: 1.0, MaxIterations: 2000, GoalSampleRate: 0.05}
	successes := 0
	for seed := int64(0); seed < 100; seed++ {
		p, err := NewRRTPlanner(testStart, testGoal, testBounds, cfg, WithSeed(seed))
		require.NoError(t, err)
		if !p.Plan() {
			continue
		}
		successes++

		path := p.Path()
		require.Equal(t, testStart, path[0])
		require.Equal(t, testGoal, path[len(path)-1])
		for i := 1; i < len(path); i++ {
			require.LessOrEqual(t, path[i-1].DistanceTo(path[i]), cfg.StepSize+1e-9)
		}
	}
	assert.Greater(t, successes, 95)
}

func TestRRTTreeInvariants(t *testing.T) {
	p := newTestRRT(t, DefaultRRTConfig(), WithSeed(3))
	p.SetObstacles(scattered)
	require.True(t, p.Plan())

	nodes := p.Nodes()
	parents := p.Parents()
	requireValidTree(t, parents, p.NumNodes())
	assert.Len(t, p.Edges(), p.NumNodes()-1)
	assert.Len(t, p.EdgeSegments(), p.NumNodes()-1)
	assert.Equal(t, testStart, nodes[0])

	field := NewObstacleField(scattered)
	for _, e := range p.Edges() {
		assert.Equal(t, parents[e.To], e.From)
		assert.True(t, field.IsCollisionFree(nodes[e.From], nodes[e.To]))
		assert.LessOrEqual(t, e.Weight, 1.0+1e-9)
	}

	// the path is the parent chain of the last node
	path := p.Path()
	i := len(nodes) - 1
	for k := len(path) - 1; k >= 0; k-- {
		require.Equal(t, nodes[i], path[k])
		i = parents[i]
	}
	assert.Equal(t, -1, i)
}

func TestRRTGoalOnlySampling(t *testing.T) {
	p := newTestRRT(t, RRTConfig{StepSize: 1.0, MaxIterations: 100, GoalSampleRate: 1.0}, WithSeed(1))
	require.True(t, p.Plan())

	path := p.Path()
	assert.Len(t, path, 13)
	assert.InDelta(t, 8*math.Sqrt2, PathLength(path), 1e-6)
	for _, c := range path {
		assert.InDelta(t, c.X, c.Y, 1e-9, "waypoint %v leaves the diagonal", c)
	}
}

func TestRRTZeroIterations(t *testing.T) {
	p := newTestRRT(t, RRTConfig{StepSize: 1.0, MaxIterations: 0, GoalSampleRate: 0.05})

	assert.Nil(t, p.Nodes())
	assert.False(t, p.Plan())
	assert.Nil(t, p.Path())
	assert.Equal(t, 1, p.NumNodes())
	assert.Empty(t, p.Edges())
}

func TestRRTBlockingWall(t *testing.T) {
	p := newTestRRT(t, RRTConfig{StepSize: 1.0, MaxIterations: 1000, GoalSampleRate: 0.1}, WithSeed(4))
	p.SetObstacles([]Obstacle{wall})

	assert.False(t, p.Plan())
	assert.Nil(t, p.Path())
	for _, n := range p.Nodes() {
		assert.Less(t, n.X, 4.0)
	}
}

func TestRRTCustomChecker(t *testing.T) {
	p := newTestRRT(t, RRTConfig{StepSize: 1.0, MaxIterations: 2000, GoalSampleRate: 0.05},
		WithSeed(1), WithCollisionChecker(blockedSpace{}))

	assert.False(t, p.Plan())
	assert.Equal(t, 1, p.NumNodes())

	p.SetObstacles(nil)
	assert.True(t, p.Plan())
}

func TestRRTDeterminism(t *testing.T) {
	run := func() []Configuration {
		p := newTestRRT(t, DefaultRRTConfig(), WithSeed(99))
		p.SetObstacles(scattered)
		p.Plan()
		return p.Nodes()
	}
	assert.Equal(t, run(), run())
}

func TestRRTConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  RRTConfig
		want []error
	}{
		{"zero step", RRTConfig{StepSize: 0, MaxIterations: 10, GoalSampleRate: 0.1}, []error{ErrInvalidStepSize}},
		{"NaN step", RRTConfig{StepSize: math.NaN(), MaxIterations: 10}, []error{ErrInvalidStepSize}},
		{"negative iterations", RRTConfig{StepSize: 1, MaxIterations: -1}, []error{ErrInvalidIterations}},
		{"rate above one", RRTConfig{StepSize: 1, GoalSampleRate: 1.5}, []error{ErrInvalidGoalSampleRate}},
		{"all invalid", RRTConfig{StepSize: -1, MaxIterations: -1, GoalSampleRate: -0.1},
			[]error{ErrInvalidStepSize, ErrInvalidIterations, ErrInvalidGoalSampleRate}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), len(tt.want))
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	assert.NoError(t, DefaultRRTConfig().Validate())

	_, err := NewRRTPlanner(testStart, testGoal, NewBounds(0, 10, 5, 4), DefaultRRTConfig())
	assert.ErrorIs(t, err, ErrInvalidBounds)
}
