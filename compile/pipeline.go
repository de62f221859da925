// Package compile orchestrates the full front-end pipeline: lexing and
// parsing each file, merging and validating the declarations, and deriving
// the transition graph. The pipeline is synchronous, owns no state across
// runs, and never writes to any output stream; consumers render the result.
package compile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matlang/go-matlang/ast"
	"github.com/matlang/go-matlang/graph"
	"github.com/matlang/go-matlang/semantic"
)

// SourceFile is one file's raw text, identified by name. File reading is
// the caller's concern; the pipeline treats content as already available.
type SourceFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Diagnostic wraps one error with the file it came from. Semantic errors
// span files and carry an empty File.
type Diagnostic struct {
	File string
	Err  error
}

func (d Diagnostic) Error() string {
	if d.File == "" {
		return d.Err.Error()
	}
	return fmt.Sprintf("%s: %s", d.File, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result carries the outcome of one pipeline run. System and Graph are
// non-nil iff Diagnostics is empty; there is no best-effort partial system.
type Result struct {
	RunID      string
	SystemName string
	StartedAt  time.Time

	System      *semantic.System
	Graph       *graph.Graph
	Diagnostics []Diagnostic
}

// Valid reports whether the run produced a validated system.
func (r *Result) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Compile runs the whole pipeline over the files of one system, in the
// given file order.
//
// Lexical and parse errors are collected per file: a file that fails to
// tokenize or parse is dropped from the run, but every other file is still
// parsed so one run surfaces all files' syntax errors. Semantic analysis
// requires the complete declaration stream and therefore only runs when
// every file parsed; the graph is only derived from a clean system.
func Compile(systemName string, files []SourceFile) *Result {
	result := &Result{
		RunID:      uuid.NewString(),
		SystemName: systemName,
		StartedAt:  time.Now().UTC(),
	}

	parsed := make([]*ast.File, 0, len(files))
	syntaxFailed := false
	for _, file := range files {
		decls, err := parseOne(file)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{File: file.Name, Err: err})
			syntaxFailed = true
			continue
		}
		parsed = append(parsed, decls)
	}
	if syntaxFailed {
		return result
	}

	system, errs := semantic.Analyze(systemName, parsed)
	if len(errs) > 0 {
		for _, err := range errs {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Err: err})
		}
		return result
	}

	result.System = system
	result.Graph = graph.Build(system)
	return result
}
