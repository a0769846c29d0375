// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every subcommand: a YAML file
// (loaded first, if --config is given) merged with whatever flags the user
// passed on the command line, flags taking precedence: cobra binds the
// flags to a separate Config, and applyChangedFlags copies onto this one
// only the flags the user actually set, after the file is loaded.
type Config struct {
	SeedLength int    `yaml:"seed-length"`
	StepSize   int    `yaml:"step-size"`
	Context    int    `yaml:"context"`
	Forward    bool   `yaml:"forward"`
	Reverse    bool   `yaml:"reverse"`
	Ploidy     int    `yaml:"ploidy"`
	NumPaths   int    `yaml:"num-paths"`
	Patched    bool   `yaml:"patched"`
	Workers    int    `yaml:"workers"`
	JSONLogs   bool   `yaml:"json-logs"`
}

// defaultConfig mirrors a small, single-sample diploid run: the values
// the CLI flags default to when a user supplies neither a config file nor
// an override flag.
func defaultConfig() Config {
	return Config{
		SeedLength: 20,
		StepSize:   10,
		Context:    20,
		Forward:    true,
		Ploidy:     2,
		NumPaths:   1,
		Workers:    1,
	}
}

func loadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(jsonLogs, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
