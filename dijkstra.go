package planner

import (
	"container/heap"
	"math"
)

// queueItem is a tentative distance entry in the Dijkstra frontier.
type queueItem struct {
	node int
	dist float64
}

// priorityQueue implements heap.Interface ordered by tentative distance
type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].dist < pq[j].dist
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// shortestPath computes the minimum-cost route from src to dst with
// Dijkstra's algorithm. The search stops as soon as dst is popped. It
// returns the node indices from src to dst inclusive and the route cost, or
// ok == false when dst is unreachable.
func shortestPath(g *graph, src, dst int) (route []int, cost float64, ok bool) {
	n := g.len()
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return nil, math.Inf(1), false
	}

	dist := make([]float64, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[src] = 0

	pq := &priorityQueue{{node: src, dist: 0}}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(queueItem)
		// stale entry left behind by a later improvement
		if current.dist > dist[current.node] {
			continue
		}
		if current.node == dst {
			break
		}
		for _, a := range g.adj[current.node] {
			nd := current.dist + a.cost
			if nd < dist[a.to] {
				dist[a.to] = nd
				prev[a.to] = current.node
				heap.Push(pq, queueItem{node: a.to, dist: nd})
			}
		}
	}

	if math.IsInf(dist[dst], 1) {
		return nil, dist[dst], false
	}
	route = walkBack(dst, func(i int) (int, bool) {
		return prev[i], prev[i] >= 0
	})
	return route, dist[dst], true
}
