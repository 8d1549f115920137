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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/wavsort/pkg/config"
	"github.com/walteh/wavsort/pkg/scan"
	"github.com/walteh/wavsort/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📢 Reporter receives one call per classified file and per copy decision
type Reporter interface {
	Valid(ctx context.Context, path string)
	Invalid(ctx context.Context, path string, err error)
	Copied(ctx context.Context, target string)
	WouldCopy(ctx context.Context, target string)
}

// 🔍 CheckFunc classifies one file; a nil error means valid
type CheckFunc func(ctx context.Context, path string) error

// 🔧 Options contains configuration for the sorter
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// Reporter prints per-file results
	Reporter Reporter
	// Output manages the output tree, defaults to status.New(Config.Output)
	Output *status.Manager
	// Check classifies files, defaults to Check
	Check CheckFunc
}

// 🎮 Sorter checks every candidate under the input root and copies the
// invalid ones into the output tree
type Sorter struct {
	config   *config.Config
	reporter Reporter
	output   *status.Manager
	check    CheckFunc
}

// 🏭 New creates a new sorter with the given options
func New(opts Options) (*Sorter, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	if opts.Output == nil {
		opts.Output = status.New(opts.Config.Output)
	}
	if opts.Check == nil {
		opts.Check = Check
	}
	return &Sorter{
		config:   opts.Config,
		reporter: opts.Reporter,
		output:   opts.Output,
		check:    opts.Check,
	}, nil
}

// 🏃 Execute runs the pass and returns the counters. On a fatal error the
// counters reflect the files processed before it.
func (s *Sorter) Execute(ctx context.Context) (status.Counters, error) {
	logger := zerolog.Ctx(ctx)
	var counters status.Counters

	if err := s.output.EnsureRoot(ctx); err != nil {
		return counters, err
	}

	logger.Debug().
		Str("input", s.config.Input).
		Str("output", s.output.BaseDir()).
		Bool("dry_run", s.config.DryRun).
		Strs("ignore", s.config.Ignore).
		Msg("starting scan")

	for candidate, err := range scan.Walk(ctx, s.config.Input, scan.Options{Ignore: s.config.Ignore}) {
		if err != nil {
			return counters, errors.Errorf("scanning %s: %w", s.config.Input, err)
		}

		outcome, err := s.processFile(ctx, candidate)
		counters.Record(outcome)
		if err != nil {
			return counters, errors.Errorf("processing %s: %w", candidate.Path, err)
		}
	}

	return counters, nil
}

// 📄 processFile classifies a single candidate and relocates it if invalid
func (s *Sorter) processFile(ctx context.Context, c scan.Candidate) (status.Outcome, error) {
	checkErr := s.check(ctx, c.Path)
	if checkErr == nil {
		s.reporter.Valid(ctx, c.Path)
		return status.OutcomeValid, nil
	}

	s.reporter.Invalid(ctx, c.Path, checkErr)

	if s.config.DryRun {
		s.reporter.WouldCopy(ctx, s.output.Target(c.Rel))
		return status.OutcomeInvalid, nil
	}

	target, err := s.output.Relocate(ctx, c.Path, c.Rel)
	if err != nil {
		return status.OutcomeInvalid, err
	}
	s.reporter.Copied(ctx, target)

	return status.OutcomeInvalid, nil
}
