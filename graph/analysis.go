package graph

// Derived analyses. Each is a pure function of the graph: degrees and
// reachability are recomputed per call, nothing is cached, and the analyses
// may run in any order or not at all.

// ReachableFrom returns the set of nodes reachable from the given entry
// nodes by forward traversal, including the entries themselves. Entry nodes
// that are not part of the graph contribute nothing.
func (g *Graph) ReachableFrom(entries ...Node) map[Node]bool {
	inGraph := make(map[Node]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		inGraph[n] = true
	}

	out := make(map[Node][]Node)
	for _, e := range g.Edges {
		out[e.From] = append(out[e.From], e.To)
	}

	reached := make(map[Node]bool)
	var stack []Node
	for _, entry := range entries {
		if inGraph[entry] {
			stack = append(stack, entry)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[cur] {
			continue
		}
		reached[cur] = true
		for _, next := range out[cur] {
			if !reached[next] {
				stack = append(stack, next)
			}
		}
	}
	return reached
}

// UnreachableFrom returns the nodes not reachable from the given entries, in
// graph node order. Unreachable states are a diagnostic, never a validation
// failure.
func (g *Graph) UnreachableFrom(entries ...Node) []Node {
	reached := g.ReachableFrom(entries...)
	var unreachable []Node
	for _, n := range g.Nodes {
		if !reached[n] {
			unreachable = append(unreachable, n)
		}
	}
	return unreachable
}

func (g *Graph) degrees() (in, out map[Node]int) {
	in = make(map[Node]int)
	out = make(map[Node]int)
	for _, e := range g.Edges {
		out[e.From]++
		in[e.To]++
	}
	return in, out
}

// Sources returns the nodes with indegree zero, in graph node order.
func (g *Graph) Sources() []Node {
	in, _ := g.degrees()
	var sources []Node
	for _, n := range g.Nodes {
		if in[n] == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns the nodes with outdegree zero, in graph node order.
func (g *Graph) Sinks() []Node {
	_, out := g.degrees()
	var sinks []Node
	for _, n := range g.Nodes {
		if out[n] == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// SelfLoops counts edges whose endpoints coincide. Self-loops are legal and
// meaningful (a repeatable strike, a terminal hold).
func (g *Graph) SelfLoops() int {
	count := 0
	for _, e := range g.Edges {
		if e.From == e.To {
			count++
		}
	}
	return count
}

// Stats summarizes the structural analyses in one pass-friendly value.
type Stats struct {
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
	SelfLoops int    `json:"self_loops"`
	Sources   []Node `json:"sources,omitempty"`
	Sinks     []Node `json:"sinks,omitempty"`
	Isolated  []Node `json:"isolated,omitempty"`
}

// Stats classifies every node by degree: sources have indegree zero, sinks
// have outdegree zero, and nodes touching no edge at all are reported as
// isolated (they appear in all three lists).
func (g *Graph) Stats() Stats {
	in, out := g.degrees()

	stats := Stats{
		Nodes:     len(g.Nodes),
		Edges:     len(g.Edges),
		SelfLoops: g.SelfLoops(),
	}
	for _, n := range g.Nodes {
		if in[n] == 0 {
			stats.Sources = append(stats.Sources, n)
		}
		if out[n] == 0 {
			stats.Sinks = append(stats.Sinks, n)
		}
		if in[n] == 0 && out[n] == 0 {
			stats.Isolated = append(stats.Isolated, n)
		}
	}
	return stats
}
