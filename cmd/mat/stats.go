package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/graph"
)

func stats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to TOML config file")
	entriesFlag := fs.String("entries", "", "Comma-separated reachability entry nodes, e.g. Standing[Neutral]")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mat stats <directory> [options]

Validate the system and print structural statistics of its transition graph:
node/edge/self-loop counts, degree-based source and sink classification, and
reachability from the configured entry nodes.

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

	g := result.Graph
	st := g.Stats()

	fmt.Printf("Graph statistics for %q:\n", g.System)
	fmt.Printf("  Nodes:      %d\n", st.Nodes)
	fmt.Printf("  Edges:      %d\n", st.Edges)
	fmt.Printf("  Self-loops: %d\n", st.SelfLoops)

	printNodeList("Source nodes (no incoming edges)", st.Sources)
	printNodeList("Sink nodes (no outgoing edges)", st.Sinks)
	printNodeList("Isolated nodes (no edges at all)", st.Isolated)

	entries, err := parseEntries(*entriesFlag, cfg.Analysis.Entries)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		unreachable := g.UnreachableFrom(entries...)
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID()
		}
		fmt.Printf("\n  Reachability from %s:\n", strings.Join(ids, ", "))
		fmt.Printf("    Reachable:   %d of %d nodes\n", st.Nodes-len(unreachable), st.Nodes)
		printNodeList("  Unreachable nodes", unreachable)
	}
	return nil
}

func printNodeList(title string, nodes []graph.Node) {
	if len(nodes) == 0 {
		return
	}
	fmt.Printf("\n  %s:\n", title)
	for _, n := range nodes {
		fmt.Printf("    - %s\n", n.ID())
	}
}

// parseEntries builds the entry node set from the -entries flag, falling
// back to the config file's analysis.entries.
func parseEntries(flagValue string, configured []string) ([]graph.Node, error) {
	raw := configured
	if flagValue != "" {
		raw = strings.Split(flagValue, ",")
	}

	var entries []graph.Node
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		node, err := graph.ParseNode(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, node)
	}
	return entries, nil
}
