package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	cube      = NewBounds3D(0, 4, 0, 4, 0, 4)
	cubeStart = NewConfiguration3D(0.5, 0.5, 0.5)
	cubeGoal  = NewConfiguration3D(3, 3, 3)
)

func TestRRT3DFreeSpace(t *testing.T) {
	cfg := RRT3DConfig{StepSize: 1, MaxIterations: 3000}
	successes := 0
	for seed := int64(0); seed < 10; seed++ {
		p, err := NewRRT3DPlanner(cubeStart, cubeGoal, cube, cfg, WithSeed(seed))
		require.NoError(t, err)

		res := p.Plan()
		require.Len(t, res.Nodes, p.NumNodes())
		requireValidTree(t, p.Parents(), len(res.Nodes))
		for _, n := range res.Nodes {
			require.True(t, cube.Contains(n), "node %v outside bounds", n)
		}
		if !res.Success {
			assert.Nil(t, res.Path)
			continue
		}
		successes++

		require.Equal(t, cubeStart, res.Path[0])
		require.Equal(t, cubeGoal, res.Path[len(res.Path)-1])
		for i := 1; i < len(res.Path); i++ {
			require.LessOrEqual(t, res.Path[i-1].DistanceTo(res.Path[i]), cfg.StepSize+1e-9)
		}
		// the goal joins the tree only from strictly within one step
		last := len(res.Path) - 1
		assert.Less(t, res.Path[last-1].DistanceTo(res.Path[last]), cfg.StepSize)
		assert.Equal(t, res.Time, p.PlanningTime())
	}
	assert.GreaterOrEqual(t, successes, 9)
}

func TestRRT3DStartOutsideBounds(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, err := NewRRT3DPlanner(NewConfiguration3D(-1, -1, -1), cubeGoal, cube,
		RRT3DConfig{StepSize: 1, MaxIterations: 500}, WithSeed(1), WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)

	res := p.Plan()
	assert.False(t, res.Success)
	assert.Nil(t, res.Path)
	assert.Len(t, res.Nodes, 1)
	assert.Empty(t, p.Edges())
	assert.Equal(t, 1, logs.FilterMessage("endpoint outside bounds").Len())
}

func TestRRT3DIgnoresCollisionChecker(t *testing.T) {
	p, err := NewRRT3DPlanner(cubeStart, cubeGoal, cube, RRT3DConfig{StepSize: 1, MaxIterations: 3000},
		WithSeed(7), WithCollisionChecker(blockedSpace{}))
	require.NoError(t, err)

	assert.True(t, p.Plan().Success)
}

func TestRRT3DZeroIterations(t *testing.T) {
	p, err := NewRRT3DPlanner(cubeStart, cubeGoal, cube, RRT3DConfig{StepSize: 1})
	require.NoError(t, err)

	res := p.Plan()
	assert.False(t, res.Success)
	assert.Equal(t, []Configuration3D{cubeStart}, res.Nodes)
}

func TestRRT3DDeterminism(t *testing.T) {
	run := func() RRT3DResult {
		p, err := NewRRT3DPlanner(cubeStart, cubeGoal, cube, DefaultRRT3DConfig(), WithSeed(21))
		require.NoError(t, err)
		return p.Plan()
	}
	a, b := run(), run()
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Path, b.Path)
}

func TestRRT3DValidation(t *testing.T) {
	_, err := NewRRT3DPlanner(cubeStart, cubeGoal, NewBounds3D(0, 4, 0, 4, 4, 0), RRT3DConfig{StepSize: 0, MaxIterations: -5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBounds)
	assert.ErrorIs(t, err, ErrInvalidStepSize)
	assert.ErrorIs(t, err, ErrInvalidIterations)
	assert.Contains(t, err.Error(), "axis 2")

	assert.NoError(t, DefaultRRT3DConfig().Validate())
}
