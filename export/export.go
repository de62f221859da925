// Package export serializes a derived graph for external consumers. The
// graph already exposes everything needed; nothing is re-derived from the
// system here except the optional group clustering, which is metadata only.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matlang/go-matlang/ast"
	"github.com/matlang/go-matlang/graph"
)

// JSON renders the graph as indented JSON with the node set as
// (state, role) pairs and the edge set as (from, to, action, sequence)
// tuples.
func JSON(g *graph.Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// DOT renders the graph in Graphviz DOT format, one box per node and one
// action-labeled arrow per edge.
func DOT(g *graph.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", g.System)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %q [label=\"%s\\n[%s]\"];\n", n.ID(), n.State, n.Role)
	}
	b.WriteString("\n")
	writeEdges(&b, g, "  ")

	b.WriteString("}\n")
	return b.String()
}

// DOTWithGroups renders the graph with group members drawn inside DOT
// clusters. DOT clusters are exclusive, so a state belonging to several
// groups is drawn inside the first declared group containing it; group
// membership itself stays non-exclusive.
func DOTWithGroups(g *graph.Graph, groups []ast.Group) string {
	clusterOf := make(map[string]int)
	for i, grp := range groups {
		for _, state := range grp.States {
			if _, taken := clusterOf[state]; !taken {
				clusterOf[state] = i
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", g.System)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	clustered := make(map[int][]graph.Node)
	for _, n := range g.Nodes {
		if i, ok := clusterOf[n.State]; ok {
			clustered[i] = append(clustered[i], n)
			continue
		}
		fmt.Fprintf(&b, "  %q [label=\"%s\\n[%s]\"];\n", n.ID(), n.State, n.Role)
	}

	for i, grp := range groups {
		members := clustered[i]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n  subgraph \"cluster_%s\" {\n", grp.Name)
		fmt.Fprintf(&b, "    label=%q;\n", grp.Name)
		for _, n := range members {
			fmt.Fprintf(&b, "    %q [label=\"%s\\n[%s]\"];\n", n.ID(), n.State, n.Role)
		}
		b.WriteString("  }\n")
	}

	b.WriteString("\n")
	writeEdges(&b, g, "  ")

	b.WriteString("}\n")
	return b.String()
}

func writeEdges(b *strings.Builder, g *graph.Graph, indent string) {
	for _, e := range g.Edges {
		fmt.Fprintf(b, "%s%q -> %q [label=%q];\n", indent, e.From.ID(), e.To.ID(), e.Action)
	}
}
