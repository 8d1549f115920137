// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for settings file parsers
type Parser interface {
	// 📝 Parse parses settings from bytes
	Parse(ctx context.Context, data []byte) (*Settings, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is the run configuration, fixed once the command starts
type Config struct {
	Input  string   // Directory scanned for WAVE files
	Output string   // Directory that receives copies of invalid files
	DryRun bool     // Report copies without performing them
	Debug  bool     // Enable debug logging
	Ignore []string // Doublestar patterns excluded from the scan
}

// 🔧 Settings holds the optional values read from a settings file.
// Nil pointers mean the key was absent.
type Settings struct {
	DryRun *bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Debug  *bool    `json:"debug,omitempty" yaml:"debug,omitempty"`
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// 🎯 Load reads a settings file, picking the parser by file extension
func Load(ctx context.Context, path string) (*Settings, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading settings")

	// Read settings file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	// Parse settings
	s, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return s, nil
}

// 🔀 ApplyTo copies settings into cfg. Values whose flag was set explicitly
// on the command line are left alone.
func (s *Settings) ApplyTo(cfg *Config, flagChanged func(name string) bool) {
	if s == nil {
		return
	}
	if s.DryRun != nil && !flagChanged("dry-run") {
		cfg.DryRun = *s.DryRun
	}
	if s.Debug != nil && !flagChanged("debug") {
		cfg.Debug = *s.Debug
	}
	cfg.Ignore = append(cfg.Ignore, s.Ignore...)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.Input == "" {
		return errors.Errorf("input directory is required")
	}
	if cfg.Output == "" {
		return errors.Errorf("output directory is required")
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	// Clean up paths
	cfg.Input = filepath.Clean(cfg.Input)
	cfg.Output = filepath.Clean(cfg.Output)

	if samePath(cfg.Input, cfg.Output) {
		return errors.Errorf("output directory %s must differ from input directory", cfg.Output)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "copy"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s -> %s (%s)", cfg.Input, cfg.Output, mode)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
