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

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/walteh/wavsort/pkg/config"
	"github.com/walteh/wavsort/pkg/log"
	"github.com/walteh/wavsort/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the command line flags
type rootFlags struct {
	configFile string
	dryRun     bool
	debug      bool
}

// newRootCmd creates the wavsort command writing its report to stdout and
// validation errors to stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "wavsort <input-dir> <output-invalid-dir>",
		Short: "Validate WAV files and copy the invalid ones aside",
		Long: `wavsort recursively scans input-dir for .wav files and fully decodes each one.
It will:
1. Create output-invalid-dir
2. Check the header and every sample of each file
3. Copy files that fail to the same relative path under output-invalid-dir
4. Print how many files were valid and invalid`,
		Args:    cobra.ExactArgs(2),
		Version: GetVersionInfo().Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg := &config.Config{
				Input:  args[0],
				Output: args[1],
				DryRun: flags.dryRun,
				Debug:  flags.debug,
			}

			if flags.configFile != "" {
				settings, err := config.Load(cmd.Context(), flags.configFile)
				if err != nil {
					return errors.Errorf("loading config: %w", err)
				}
				settings.ApplyTo(cfg, cmd.Flags().Changed)
			}

			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			logger := newLogger(stderr, cfg.Debug)
			return run(logger.WithContext(cmd.Context()), cfg, stdout, stderr)
		},
	}

	cmd.SilenceErrors = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(FormatVersion())

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report invalid files without copying them")
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "settings file (.yaml, .yml, .hcl or .json)")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	return cmd
}

// run executes one validation pass and prints the summary
func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	reporter := log.New(stdout, stderr)
	reporter.Header(ctx, cfg.String())

	sorter, err := operation.New(operation.Options{
		Config:   cfg,
		Reporter: reporter,
	})
	if err != nil {
		return errors.Errorf("creating sorter: %w", err)
	}

	counters, err := sorter.Execute(ctx)
	if err != nil {
		return errors.Errorf("validating %s: %w", cfg.Input, err)
	}

	reporter.Summary(ctx, counters)
	return nil
}
