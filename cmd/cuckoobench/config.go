// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// config holds the full set of tunables for a cuckoobench run. Every
// field can be set from a flag; a -config file, if given, overrides
// whichever of these it mentions.
type config struct {
	InitialCapacity int           `yaml:"initial-capacity"`
	KeyRange        uint64        `yaml:"key-range"`
	AddRatio        float64       `yaml:"add-ratio"`
	RemoveRatio     float64       `yaml:"remove-ratio"`
	ContainsRatio   float64       `yaml:"contains-ratio"`
	Workers         int           `yaml:"workers"`
	Duration        time.Duration `yaml:"duration"`
	MaxInflight     int           `yaml:"max-inflight"`
	ListenAddr      string        `yaml:"listen-addr"`
	MetricsPath     string        `yaml:"metrics-path"`
}

// mergeFile reads a YAML file at path and overwrites any field it sets
// in cfg, leaving fields the file doesn't mention untouched.
func (c *config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cuckoobench: reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("cuckoobench: parsing config %q: %w", path, err)
	}
	return nil
}

// validate reports the first configuration inconsistency found.
func (c *config) validate() error {
	if c.InitialCapacity <= 0 {
		return fmt.Errorf("cuckoobench: -capacity must be positive, got %d", c.InitialCapacity)
	}
	if c.KeyRange == 0 {
		return fmt.Errorf("cuckoobench: -key-range must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("cuckoobench: -workers must be positive, got %d", c.Workers)
	}
	sum := c.AddRatio + c.RemoveRatio + c.ContainsRatio
	if sum <= 0 {
		return fmt.Errorf("cuckoobench: operation mix ratios must sum to a positive number, got %v", sum)
	}
	return nil
}
