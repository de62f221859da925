package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/export"
)

func dot(args []string) error {
	fs := flag.NewFlagSet("dot", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to TOML config file")
	outputFile := fs.String("output", "", "Write DOT to file instead of stdout")
	clusters := fs.Bool("groups", false, "Render declared groups as clusters")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mat dot <directory> [options]

Validate the system and export its transition graph in Graphviz DOT format.

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

	var out string
	if *clusters {
		out = export.DOTWithGroups(result.Graph, result.System.Groups)
	} else {
		out = export.DOT(result.Graph)
	}

	path := *outputFile
	if path == "" {
		path = cfg.Output.DOT
	}
	return writeOrPrint(path, []byte(out))
}
