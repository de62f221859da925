package main

import (
	"fmt"
	"os"

	"github.com/matlang/go-matlang/compile"
	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/loader"
)

// compileDir loads and compiles one system directory using the given config.
func compileDir(cfg *config.Config, dir string) (*compile.Result, error) {
	finder, err := loader.NewFinder(cfg.Input.Extension, cfg.Input.Exclude)
	if err != nil {
		return nil, err
	}
	files, err := finder.Find(dir)
	if err != nil {
		return nil, err
	}
	return compile.Compile(loader.SystemName(dir), files), nil
}

// reportDiagnostics prints every diagnostic and returns a terminal error.
func reportDiagnostics(result *compile.Result) error {
	for _, diag := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, diag.Error())
	}
	return fmt.Errorf("system %q is invalid: %d error(s)", result.SystemName, len(result.Diagnostics))
}

// writeOrPrint writes data to path, or to stdout when path is empty.
func writeOrPrint(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "written to %s\n", path)
	return nil
}
