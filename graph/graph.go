// Package graph derives the explicit transition graph of a validated system.
//
// Nodes are (state, role) pairs, edges are action-labeled transitions taken
// from sequence steps. The graph is a pure value computed from a System: it
// holds no back-reference, is never mutated after Build, and recomputation
// is the only supported refresh path.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matlang/go-matlang/semantic"
)

// Node is a validated (state, role) pair, the atomic unit of the graph.
type Node struct {
	State string `json:"state"`
	Role  string `json:"role"`
}

// ID returns the canonical "State[Role]" form of the node.
func (n Node) ID() string {
	return fmt.Sprintf("%s[%s]", n.State, n.Role)
}

// ParseNode parses the canonical "State[Role]" form.
func ParseNode(s string) (Node, error) {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return Node{}, fmt.Errorf("invalid node %q: want State[Role]", s)
	}
	state := s[:open]
	role := s[open+1 : len(s)-1]
	if role == "" {
		return Node{}, fmt.Errorf("invalid node %q: empty role", s)
	}
	return Node{State: state, Role: role}, nil
}

// Edge is a labeled directed connection between two nodes, attributed to one
// action within one sequence. Edges from different sequences between the
// same node pair are all retained; they are distinct transitions.
type Edge struct {
	From     Node   `json:"from"`
	To       Node   `json:"to"`
	Action   string `json:"action"`
	Sequence string `json:"sequence"`
}

// Graph is the derived, read-only view over a validated System.
type Graph struct {
	System string `json:"system"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
}

// Build derives the graph from a validated system.
//
// The node set is the full compatibility product: for every state and every
// role of the merged role set, (state, role) is a node iff the role is
// compatible with the state. This is the only place open compatibility is
// materialized, and it always runs against the final merged role set, so a
// state declared before its roles still expands correctly. Nodes are sorted
// by state then role; edges keep sequence declaration order and step order.
func Build(sys *semantic.System) *Graph {
	var nodes []Node
	for _, state := range sys.States {
		for _, role := range sys.Roles {
			if sys.Compatible(state.Name, role) {
				nodes = append(nodes, Node{State: state.Name, Role: role})
			}
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].State != nodes[j].State {
			return nodes[i].State < nodes[j].State
		}
		return nodes[i].Role < nodes[j].Role
	})

	var edges []Edge
	for _, seq := range sys.Sequences {
		for _, step := range seq.Steps {
			edges = append(edges, Edge{
				From:     Node{State: step.From.State, Role: step.From.Role},
				To:       Node{State: step.To.State, Role: step.To.Role},
				Action:   step.Action,
				Sequence: seq.Name,
			})
		}
	}

	return &Graph{System: sys.Name, Nodes: nodes, Edges: edges}
}
