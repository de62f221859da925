package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/history"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to TOML config file")
	record := fs.Bool("record", false, "Record this run into the history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mat validate <directory> [options]

Merge every source file of the directory into one system and validate it:
unique identifiers, resolvable node references, role compatibility, and
sequence chain connectivity. All violations of a phase are reported in one
run.

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

	if *record && cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(result); err != nil {
			return err
		}
	}

	if !result.Valid() {
		return reportDiagnostics(result)
	}

	system := result.System
	fmt.Printf("System %q is valid (run %s)\n\n", system.Name, result.RunID)
	fmt.Printf("  Roles (%d):\n", len(system.Roles))
	for _, role := range system.Roles {
		fmt.Printf("    - %s\n", role)
	}
	fmt.Printf("  States (%d):\n", len(system.States))
	for _, state := range system.States {
		fmt.Printf("    - %s\n", state.Name)
	}
	fmt.Printf("  Sequences (%d):\n", len(system.Sequences))
	for _, seq := range system.Sequences {
		fmt.Printf("    - %s (%d steps)\n", seq.Name, len(seq.Steps))
	}
	if len(system.Groups) > 0 {
		fmt.Printf("  Groups (%d):\n", len(system.Groups))
		for _, group := range system.Groups {
			fmt.Printf("    - %s (%d states)\n", group.Name, len(group.States))
		}
	}
	return nil
}
