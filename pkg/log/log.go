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

package log

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/wavsort/pkg/status"
)

// 🎯 Logger prints the per-file report and the summary. Every line is
// mirrored to the zerolog logger carried by the context.
type Logger struct {
	console io.Writer // informational lines
	diag    io.Writer // validation errors
}

// 🏭 New creates a new logger
func New(console, diag io.Writer) *Logger {
	return &Logger{
		console: console,
		diag:    diag,
	}
}

func symbol(r rune, attr color.Attribute) string {
	return color.New(attr).Sprint(string(r))
}

// 📝 Header logs a header
func (l *Logger) Header(ctx context.Context, msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("wavsort")
	fmt.Fprintf(l.console, "%s %s\n", name, color.New(color.Faint).Sprint("• "+msg))
	zerolog.Ctx(ctx).Debug().Msg(msg)
}

// 📝 Valid logs a file that decoded completely
func (l *Logger) Valid(ctx context.Context, path string) {
	fmt.Fprintf(l.console, "%s Valid (not copied): %s\n", symbol('✓', color.FgGreen), path)
	zerolog.Ctx(ctx).Debug().Str("file", path).Str("outcome", status.OutcomeValid.String()).Msg("file checked")
}

// 📝 Invalid logs a file that failed to open or decode
func (l *Logger) Invalid(ctx context.Context, path string, err error) {
	fmt.Fprintf(l.diag, "%s Validation error for %s: %s\n",
		symbol('✗', color.FgRed), path, color.New(color.FgRed).Sprint(err.Error()))
	zerolog.Ctx(ctx).Debug().Err(err).Str("file", path).Str("outcome", status.OutcomeInvalid.String()).Msg("file checked")
}

// 📝 Copied logs an invalid file written to the output tree
func (l *Logger) Copied(ctx context.Context, target string) {
	fmt.Fprintf(l.console, "%s Copied invalid: %s\n", symbol('→', color.FgYellow), target)
	zerolog.Ctx(ctx).Debug().Str("target", target).Msg("copied invalid file")
}

// 📝 WouldCopy logs the copy a dry run skipped
func (l *Logger) WouldCopy(ctx context.Context, target string) {
	fmt.Fprintf(l.console, "%s Would copy invalid: %s\n", symbol('⟳', color.FgBlue), target)
	zerolog.Ctx(ctx).Debug().Str("target", target).Bool("dry_run", true).Msg("skipped copy")
}

// 📊 Summary logs the run totals
func (l *Logger) Summary(ctx context.Context, c status.Counters) {
	fmt.Fprintln(l.console, color.New(color.Bold).Sprint("Validation complete."))
	fmt.Fprintf(l.console, "Valid files: %s\n", color.New(color.FgGreen).Sprint(c.Valid))
	fmt.Fprintf(l.console, "Invalid files: %s\n", color.New(color.FgRed).Sprint(c.Invalid))
	fmt.Fprintf(l.console, "Total files processed: %d.\n", c.Total())
	zerolog.Ctx(ctx).Info().
		Int("valid", c.Valid).
		Int("invalid", c.Invalid).
		Int("total", c.Total()).
		Msg("validation complete")
}
