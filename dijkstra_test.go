package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleGraph has edges 0-1 (1), 1-2 (2), 0-2 (5), 2-3 (1), 1-3 (6); node 4 is isolated.
func sampleGraph() *graph {
	g := newGraph(5)
	g.addEdge(0, 1, 1)
	g.addEdge(1, 2, 2)
	g.addEdge(0, 2, 5)
	g.addEdge(2, 3, 1)
	g.addEdge(1, 3, 6)
	return g
}

func TestShortestPath(t *testing.T) {
	g := sampleGraph()

	route, cost, ok := shortestPath(g, 0, 3)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3}, route)
	assert.InDelta(t, 4.0, cost, 1e-12)

	// summed edge weights along the route equal the reported cost
	sum := 0.0
	for i := 1; i < len(route); i++ {
		w := math.Inf(1)
		for _, a := range g.adj[route[i-1]] {
			if a.to == route[i] {
				w = math.Min(w, a.cost)
			}
		}
		sum += w
	}
	assert.InDelta(t, cost, sum, 1e-12)

	route, cost, ok = shortestPath(g, 3, 0)
	require.True(t, ok)
	assert.Equal(t, []int{3, 2, 1, 0}, route)
	assert.InDelta(t, 4.0, cost, 1e-12)
}

func TestShortestPathUnreachable(t *testing.T) {
	route, cost, ok := shortestPath(sampleGraph(), 0, 4)
	assert.False(t, ok)
	assert.Nil(t, route)
	assert.True(t, math.IsInf(cost, 1))

	_, _, ok = shortestPath(sampleGraph(), 0, 9)
	assert.False(t, ok)
}

func TestShortestPathSameNode(t *testing.T) {
	route, cost, ok := shortestPath(sampleGraph(), 2, 2)
	require.True(t, ok)
	assert.Equal(t, []int{2}, route)
	assert.Zero(t, cost)
}

func TestGraphSymmetry(t *testing.T) {
	g := sampleGraph()
	for i, arcs := range g.adj {
		for _, a := range arcs {
			found := false
			for _, back := range g.adj[a.to] {
				if back.to == i && back.cost == a.cost {
					found = true
				}
			}
			assert.True(t, found, "edge %d-%d has no mirror", i, a.to)
		}
	}
}

func TestWalkBack(t *testing.T) {
	parents := []int{-1, 0, 1, 1, 3}
	route := walkBack(4, func(i int) (int, bool) { return parents[i], parents[i] >= 0 })
	assert.Equal(t, []int{0, 1, 3, 4}, route)

	assert.Equal(t, []int{0}, walkBack(0, func(i int) (int, bool) { return parents[i], parents[i] >= 0 }))
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(nil))
	assert.Zero(t, PathLength([]Configuration{{X: 1, Y: 1}}))
	assert.InDelta(t, 7.0, PathLength([]Configuration{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 6}}), 1e-12)
	assert.InDelta(t, 2.0, PathLength3D([]Configuration3D{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 2}}), 1e-12)
}
