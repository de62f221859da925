package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFind_SortedAndFiltered(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"zeta.martial":  "state Z",
		"alpha.martial": "roles { Top }",
		"notes.txt":     "not a source file",
		"mid.martial":   "state M",
	})

	finder, err := NewFinder("", nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := finder.Find(dir)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"alpha.martial", "mid.martial", "zeta.martial"}
	if len(files) != len(expected) {
		t.Fatalf("expected %d files, got %d", len(expected), len(files))
	}
	for i, name := range expected {
		if files[i].Name != name {
			t.Errorf("file %d: expected %q, got %q", i, name, files[i].Name)
		}
	}
	if files[0].Content != "roles { Top }" {
		t.Errorf("unexpected content: %q", files[0].Content)
	}
}

func TestFind_Excludes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"keep.martial":       "state A",
		"draft_wip.martial":  "state B",
		"draft_more.martial": "state C",
	})

	finder, err := NewFinder(".martial", []string{"draft_*"})
	if err != nil {
		t.Fatal(err)
	}
	files, err := finder.Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "keep.martial" {
		t.Errorf("expected only keep.martial, got %v", files)
	}
}

func TestFind_CustomExtension(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"sys.mat":     "roles { r }",
		"sys.martial": "roles { r }",
	})

	// Extension may be given without the leading dot.
	finder, err := NewFinder("mat", nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := finder.Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "sys.mat" {
		t.Errorf("expected only sys.mat, got %v", files)
	}
}

func TestFind_NoFilesIsAnError(t *testing.T) {
	dir := writeFiles(t, map[string]string{"readme.md": "nothing here"})

	finder, err := NewFinder("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := finder.Find(dir); err == nil {
		t.Error("expected an error for a directory without source files")
	}
}

func TestFind_SkipsSubdirectories(t *testing.T) {
	dir := writeFiles(t, map[string]string{"top.martial": "state A"})
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "deep.martial"), []byte("state B"), 0o644); err != nil {
		t.Fatal(err)
	}

	finder, err := NewFinder("", nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := finder.Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "top.martial" {
		t.Errorf("discovery is non-recursive, got %v", files)
	}
}

func TestNewFinder_BadExcludePattern(t *testing.T) {
	if _, err := NewFinder("", []string{"[unclosed"}); err == nil {
		t.Error("expected an error for an invalid exclude pattern")
	}
}

func TestSystemName(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"examples/bjj-basic", "bjj-basic"},
		{"examples/bjj-basic/", "bjj-basic"},
		{".", "."},
		{"/abs/path/judo", "judo"},
	}
	for _, tt := range tests {
		if got := SystemName(tt.dir); got != tt.want {
			t.Errorf("SystemName(%q) = %q, want %q", tt.dir, got, tt.want)
		}
	}
}
