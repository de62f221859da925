package history

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matlang/go-matlang/compile"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordValidRun(t *testing.T) {
	store := openStore(t)

	result := compile.Compile("bjj", []compile.SourceFile{
		{Name: "sys.martial", Content: `
roles { Top, Bottom }
state Mount
sequence Hold:
    Stay: Mount[Top] -> Mount[Top]
`},
	})
	if !result.Valid() {
		t.Fatalf("fixture should validate: %v", result.Diagnostics)
	}
	if err := store.Record(result); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != result.RunID || run.System != "bjj" {
		t.Errorf("unexpected run identity: %+v", run)
	}
	if !run.Valid || run.Errors != 0 {
		t.Errorf("expected a valid run record, got %+v", run)
	}
	if run.Nodes != 2 || run.Edges != 1 || run.SelfLoops != 1 {
		t.Errorf("unexpected graph counts: %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("expected a stored timestamp")
	}
}

func TestStore_RecordInvalidRunWithErrors(t *testing.T) {
	store := openStore(t)

	result := compile.Compile("broken", []compile.SourceFile{
		{Name: "bad.martial", Content: "roles { Top"},
	})
	if result.Valid() {
		t.Fatal("fixture should fail")
	}
	if err := store.Record(result); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Valid || runs[0].Errors != 1 {
		t.Fatalf("expected one invalid run with one error, got %+v", runs)
	}

	msgs, err := store.Errors(result.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 stored diagnostic, got %v", msgs)
	}
	if !strings.HasPrefix(msgs[0], "bad.martial: ") {
		t.Errorf("stored diagnostic should be prefixed with its file: %q", msgs[0])
	}
}

func TestStore_RecentOrdersNewestFirst(t *testing.T) {
	store := openStore(t)

	files := []compile.SourceFile{{Name: "a.martial", Content: "roles { Top }"}}
	var ids []string
	for range 3 {
		result := compile.Compile("x", files)
		if err := store.Record(result); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, result.RunID)
	}

	runs, err := store.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit not honored: got %d runs", len(runs))
	}
	recorded := map[string]bool{ids[0]: true, ids[1]: true, ids[2]: true}
	for _, r := range runs {
		if !recorded[r.ID] {
			t.Errorf("unknown run returned: %+v", r)
		}
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Errorf("runs must come back newest first: %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestStore_ErrorsForUnknownRun(t *testing.T) {
	store := openStore(t)
	msgs, err := store.Errors("no-such-run")
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected no diagnostics, got %v", msgs)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Error("expected an error for an empty path")
	}
}
