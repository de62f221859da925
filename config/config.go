// Package config loads the tool configuration from a TOML file. Every field
// has a working default; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Input    Input    `toml:"input"`
	Output   Output   `toml:"output"`
	History  History  `toml:"history"`
	Serve    Serve    `toml:"serve"`
	Analysis Analysis `toml:"analysis"`
}

type Input struct {
	Extension string   `toml:"extension"`
	Exclude   []string `toml:"exclude"`
}

type Output struct {
	JSON string `toml:"json"`
	DOT  string `toml:"dot"`
}

type History struct {
	Path string `toml:"path"`
}

type Serve struct {
	Addr string `toml:"addr"`
}

type Analysis struct {
	// Entries are reachability entry nodes in State[Role] form.
	Entries []string `toml:"entries"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: Input{Extension: ".martial"},
		Serve: Serve{Addr: ":8420"},
	}
}

// Load reads a TOML config file and fills unset fields with defaults. When
// path is empty or the file does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Input.Extension == "" {
		cfg.Input.Extension = ".martial"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8420"
	}
	return cfg, nil
}
