package planner

// Edge connects two node indices of a roadmap or tree. Roadmap edges are
// undirected and stored with From < To; tree edges point from parent to child.
type Edge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"` // Euclidean length
}

// arc is one adjacency entry of a weighted undirected graph.
type arc struct {
	to   int     // index of the destination node
	cost float64 // Euclidean distance
}

// graph is an index-addressed weighted undirected adjacency structure.
type graph struct {
	adj [][]arc
}

func newGraph(n int) *graph {
	return &graph{adj: make([][]arc, n)}
}

// addEdge inserts the symmetric edge (i, j) with weight w.
func (g *graph) addEdge(i, j int, w float64) {
	g.adj[i] = append(g.adj[i], arc{to: j, cost: w})
	g.adj[j] = append(g.adj[j], arc{to: i, cost: w})
}

func (g *graph) len() int {
	return len(g.adj)
}
