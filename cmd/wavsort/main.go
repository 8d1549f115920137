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
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func main() {
	// Set up logger
	logger := newLogger(os.Stderr, false)
	ctx := logger.WithContext(context.Background())

	// Create and run root command
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger, debug level when requested
func newLogger(w io.Writer, debug bool) zerolog.Logger {
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(logLevel).With().Timestamp().Logger()
}

// reportFatal prints the error that ended the run
func reportFatal(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
}
