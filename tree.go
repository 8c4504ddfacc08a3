package planner

import "math"

// tree is a rooted, index-addressed node arena. parents[i] is the index of
// node i's parent, or -1 for the root at index 0. costs[i] holds the length
// of the edge to the parent; it is local information only.
type tree[C any] struct {
	nodes   []C
	parents []int
	costs   []float64
}

func newTree[C any](root C, capacity int) *tree[C] {
	t := &tree[C]{
		nodes:   make([]C, 0, capacity),
		parents: make([]int, 0, capacity),
		costs:   make([]float64, 0, capacity),
	}
	t.nodes = append(t.nodes, root)
	t.parents = append(t.parents, -1)
	t.costs = append(t.costs, 0)
	return t
}

// add appends c as a child of parent and returns its index.
func (t *tree[C]) add(c C, parent int, cost float64) int {
	t.nodes = append(t.nodes, c)
	t.parents = append(t.parents, parent)
	t.costs = append(t.costs, cost)
	return len(t.nodes) - 1
}

// nearest returns the index of the node minimizing dist to target by linear
// scan. Ties resolve to the lowest index.
func (t *tree[C]) nearest(target C, dist func(a, b C) float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, n := range t.nodes {
		if d := dist(n, target); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// pathTo returns the configurations from the root to node i inclusive.
func (t *tree[C]) pathTo(i int) []C {
	route := walkBack(i, func(j int) (int, bool) {
		return t.parents[j], t.parents[j] >= 0
	})
	path := make([]C, len(route))
	for k, j := range route {
		path[k] = t.nodes[j]
	}
	return path
}

// edges returns one parent-to-child edge per non-root node.
func (t *tree[C]) edges() []Edge {
	edges := make([]Edge, 0, len(t.nodes)-1)
	for i := 1; i < len(t.nodes); i++ {
		edges = append(edges, Edge{From: t.parents[i], To: i, Weight: t.costs[i]})
	}
	return edges
}

func (t *tree[C]) len() int {
	return len(t.nodes)
}
