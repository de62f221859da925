package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/matlang/go-matlang/config"
	"github.com/matlang/go-matlang/history"
	"github.com/matlang/go-matlang/service"
)

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to TOML config file")
	addr := fs.String("addr", "", "Listen address (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mat serve [options]

Run the HTTP compile service. Endpoints:
  GET  /health
  POST /systems/validate
  POST /systems/graph
  GET  /runs

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	listen := cfg.Serve.Addr
	if *addr != "" {
		listen = *addr
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := []service.Option{service.WithLogger(log)}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, service.WithHistory(store))
	}

	svc := service.New(opts...)
	log.Info("serving", "addr", listen)
	return http.ListenAndServe(listen, svc.Handler())
}
