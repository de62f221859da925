package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matlang/go-matlang/ast"
	"github.com/matlang/go-matlang/graph"
	"github.com/matlang/go-matlang/parser"
	"github.com/matlang/go-matlang/semantic"
)

const fixture = `
roles { Top, Bottom }

state Standing
state ClosedGuard roles { Top, Bottom }
state Mount roles { Top, Bottom }

sequence Pull:
    GuardPull: Standing[Bottom] -> ClosedGuard[Bottom]

group Guards { ClosedGuard }
`

func buildFixture(t *testing.T) (*graph.Graph, []ast.Group) {
	t.Helper()
	file, err := parser.ParseSource("fixture.martial", fixture)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	sys, errs := semantic.Analyze("bjj", []*ast.File{file})
	if len(errs) != 0 {
		t.Fatalf("validation failed: %v", errs)
	}
	return graph.Build(sys), sys.Groups
}

func TestJSON(t *testing.T) {
	g, _ := buildFixture(t)
	data, err := JSON(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		System string `json:"system"`
		Nodes  []struct {
			State string `json:"state"`
			Role  string `json:"role"`
		} `json:"nodes"`
		Edges []struct {
			Action   string `json:"action"`
			Sequence string `json:"sequence"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.System != "bjj" {
		t.Errorf("expected system bjj, got %q", decoded.System)
	}
	// 2 open-state nodes + 2 + 2 restricted ones.
	if len(decoded.Nodes) != 6 {
		t.Errorf("expected 6 nodes, got %d", len(decoded.Nodes))
	}
	if len(decoded.Edges) != 1 || decoded.Edges[0].Action != "GuardPull" || decoded.Edges[0].Sequence != "Pull" {
		t.Errorf("unexpected edges: %+v", decoded.Edges)
	}
}

func TestDOT(t *testing.T) {
	g, _ := buildFixture(t)
	out := DOT(g)

	for _, want := range []string{
		`digraph "bjj" {`,
		"rankdir=LR;",
		`"Standing[Bottom]" [label="Standing\n[Bottom]"];`,
		`"Standing[Bottom]" -> "ClosedGuard[Bottom]" [label="GuardPull"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("DOT output must close the digraph")
	}
}

func TestDOTWithGroups(t *testing.T) {
	g, groups := buildFixture(t)
	out := DOTWithGroups(g, groups)

	if !strings.Contains(out, `subgraph "cluster_Guards"`) {
		t.Errorf("expected a cluster for group Guards:\n%s", out)
	}
	if !strings.Contains(out, `label="Guards";`) {
		t.Error("cluster should carry the group name as its label")
	}
	// Grouped nodes are declared inside the cluster, not at top level.
	cluster := out[strings.Index(out, "subgraph"):]
	if !strings.Contains(cluster, `"ClosedGuard[Top]"`) {
		t.Error("ClosedGuard nodes should be drawn inside the cluster")
	}
	// Edges still appear exactly once.
	if strings.Count(out, "->") != 1 {
		t.Errorf("expected exactly one edge, got:\n%s", out)
	}
}

func TestDOTWithGroups_FirstDeclaredGroupWins(t *testing.T) {
	g, _ := buildFixture(t)
	groups := []ast.Group{
		{Name: "First", States: []string{"Mount"}},
		{Name: "Second", States: []string{"Mount"}},
	}
	out := DOTWithGroups(g, groups)
	if !strings.Contains(out, `subgraph "cluster_First"`) {
		t.Error("expected Mount clustered under its first declared group")
	}
	if strings.Contains(out, `subgraph "cluster_Second"`) {
		t.Error("a state must not be drawn in two clusters")
	}
}
