package compile

import (
	"errors"
	"testing"

	"github.com/matlang/go-matlang/parser"
	"github.com/matlang/go-matlang/semantic"
)

func TestCompile_ValidSystem(t *testing.T) {
	result := Compile("bjj", []SourceFile{
		{Name: "roles.martial", Content: "roles { Top, Bottom }"},
		{Name: "positions.martial", Content: `
state Standing
state Mount roles { Top, Bottom }

sequence Entry:
    Takedown: Standing[Top] -> Mount[Top]
`},
	})

	if !result.Valid() {
		t.Fatalf("expected a valid run, got %v", result.Diagnostics)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.SystemName != "bjj" {
		t.Errorf("expected system name bjj, got %q", result.SystemName)
	}
	if result.StartedAt.IsZero() {
		t.Error("expected a start timestamp")
	}
	if result.System == nil || result.Graph == nil {
		t.Fatal("valid run must carry both system and graph")
	}
	// Standing is open: 2 nodes, plus Mount's 2.
	if len(result.Graph.Nodes) != 4 || len(result.Graph.Edges) != 1 {
		t.Errorf("unexpected graph size: %d nodes, %d edges",
			len(result.Graph.Nodes), len(result.Graph.Edges))
	}
}

func TestCompile_SyntaxErrorsFromEveryFile(t *testing.T) {
	result := Compile("broken", []SourceFile{
		{Name: "a.martial", Content: "roles { Top"},          // unterminated block
		{Name: "b.martial", Content: "roles { Bottom }"},     // fine
		{Name: "c.martial", Content: "state Mount; state X"}, // lexical error
	})

	if result.Valid() {
		t.Fatal("expected diagnostics")
	}
	if len(result.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics (one per broken file), got %v", result.Diagnostics)
	}
	if result.Diagnostics[0].File != "a.martial" || result.Diagnostics[1].File != "c.martial" {
		t.Errorf("diagnostics must name their files: %v", result.Diagnostics)
	}

	var parseErr *parser.Error
	if !errors.As(result.Diagnostics[0], &parseErr) {
		t.Errorf("expected the first diagnostic to unwrap to a parse error, got %v", result.Diagnostics[0])
	}
	if result.System != nil || result.Graph != nil {
		t.Error("syntax failure must not produce a system or graph")
	}
}

func TestCompile_SemanticSkippedOnSyntaxFailure(t *testing.T) {
	// The second file has a semantic problem (undeclared state), but the
	// first fails to parse; only the syntax error may be reported.
	result := Compile("broken", []SourceFile{
		{Name: "bad.martial", Content: "group G {"},
		{Name: "ok.martial", Content: `
roles { Top }
sequence S:
    Move: Ghost[Top] -> Ghost[Top]
`},
	})

	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected exactly the syntax diagnostic, got %v", result.Diagnostics)
	}
	if result.Diagnostics[0].File != "bad.martial" {
		t.Errorf("unexpected diagnostic: %v", result.Diagnostics[0])
	}
}

func TestCompile_SemanticDiagnostics(t *testing.T) {
	result := Compile("invalid", []SourceFile{
		{Name: "a.martial", Content: "roles { Top }\nstate Mount\nstate Mount"},
	})

	if result.Valid() {
		t.Fatal("expected diagnostics")
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if d.File != "" {
		t.Errorf("semantic diagnostics span files and carry no file name, got %q", d.File)
	}
	var semErr semantic.Error
	if !errors.As(d, &semErr) || semErr.Kind != semantic.DuplicateState {
		t.Errorf("expected a DuplicateState error, got %v", d)
	}
}

func TestCompile_FreshRunIDPerRun(t *testing.T) {
	files := []SourceFile{{Name: "a.martial", Content: "roles { Top }"}}
	first := Compile("x", files)
	second := Compile("x", files)
	if first.RunID == second.RunID {
		t.Error("each run must get its own ID")
	}
}
