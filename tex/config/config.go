// config.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config reads interpreter settings from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for one interpreter run.
type Config struct {
	JobName string `yaml:"jobname"`
	BaseDir string `yaml:"basedir"`

	// Catcodes is "initex" or "plain".
	Catcodes       string `yaml:"catcodes"`
	UnicodeLetters bool   `yaml:"unicode_letters"`

	// EndLineChar is the initial value of \endlinechar.
	EndLineChar int64 `yaml:"endlinechar"`

	MaxExpansionDepth int `yaml:"max_expansion_depth"`
	MaxPushback       int `yaml:"max_pushback"`
	MaxInputDepth     int `yaml:"max_input_depth"`

	// Mag is the initial value of \mag.
	Mag int64 `yaml:"mag"`

	// FormatCache is the directory where \dump stores formats.  An
	// empty value selects a directory below the user's cache
	// directory.
	FormatCache string `yaml:"format_cache"`

	// Format names a format to load before the input is read.
	Format string `yaml:"format"`

	// Trace maps tracer names, e.g. "tex.interp", to one of the
	// levels "error", "info" and "debug".
	Trace map[string]string `yaml:"trace"`

	// Counts gives initial values for integer parameters, e.g.
	// "tracingmacros: 1".
	Counts map[string]int64 `yaml:"counts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		JobName:           "texput",
		Catcodes:          "initex",
		EndLineChar:       '\r',
		MaxExpansionDepth: 5000,
		MaxPushback:       4 << 20,
		MaxInputDepth:     100,
		Mag:               1000,
	}
}

// Load reads a configuration file.  Settings missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	if cfg.BaseDir != "" && !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(abs), cfg.BaseDir)
	}
	return cfg, nil
}

func (cfg *Config) check() error {
	switch cfg.Catcodes {
	case "initex", "plain":
		// pass
	default:
		return fmt.Errorf("unknown catcode preset %q", cfg.Catcodes)
	}
	if cfg.Mag <= 0 || cfg.Mag > 32768 {
		return fmt.Errorf("illegal magnification %d", cfg.Mag)
	}
	if cfg.MaxExpansionDepth <= 0 || cfg.MaxPushback <= 0 || cfg.MaxInputDepth <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	for _, level := range cfg.Trace {
		if _, ok := parseLevel(level); !ok {
			return fmt.Errorf("unknown trace level %q", level)
		}
	}
	return nil
}

func parseLevel(s string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return tracing.LevelError, true
	case "info":
		return tracing.LevelInfo, true
	case "debug":
		return tracing.LevelDebug, true
	}
	return tracing.LevelError, false
}

// ApplyTracing sets the levels of all tracers named in the
// configuration.
func (cfg *Config) ApplyTracing() {
	keys := make([]string, 0, len(cfg.Trace))
	for key := range cfg.Trace {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		level, _ := parseLevel(cfg.Trace[key])
		tracing.Select(key).SetTraceLevel(level)
	}
}
