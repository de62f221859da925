package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/export"
)

func graphCmd(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to TOML config file")
	outputFile := fs.String("output", "", "Write JSON to file instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mat graph <directory> [options]

Validate the system and export its transition graph as JSON: the node set as
(state, role) pairs and the edge set as (from, to, action, sequence) tuples.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("system directory required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	result, err := compileDir(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	if !result.Valid() {
		return reportDiagnostics(result)
	}

	data, err := export.JSON(result.Graph)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	path := *outputFile
	if path == "" {
		path = cfg.Output.JSON
	}
	return writeOrPrint(path, data)
}
