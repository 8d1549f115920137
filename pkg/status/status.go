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

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome is the classification of one scanned file
type Outcome int

const (
	OutcomeValid   Outcome = iota // File decoded completely
	OutcomeInvalid                // File failed to open or decode
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// 🔢 Counters holds the per-run totals
type Counters struct {
	Valid   int
	Invalid int
}

// Record counts one classified file
func (c *Counters) Record(o Outcome) {
	switch o {
	case OutcomeValid:
		c.Valid++
	case OutcomeInvalid:
		c.Invalid++
	}
}

// Total returns the number of files classified so far
func (c Counters) Total() int {
	return c.Valid + c.Invalid
}

// 💾 Manager owns the output tree that invalid files are copied into
type Manager struct {
	baseDir string // output root
}

// 🏭 New creates a new manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{baseDir: filepath.Clean(baseDir)}
}

// BaseDir returns the output root
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 Target returns the output path for a path relative to the input root
func (m *Manager) Target(rel string) string {
	return filepath.Join(m.baseDir, rel)
}

// 📁 EnsureRoot creates the output root and any missing parents
func (m *Manager) EnsureRoot(ctx context.Context) error {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return errors.Errorf("creating output directory %s: %w", m.baseDir, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", m.baseDir).Msg("output directory ready")
	return nil
}

// 📋 Relocate copies src to the output tree under rel and returns the
// written path. An existing file at the target is overwritten unless it is
// the source itself.
func (m *Manager) Relocate(ctx context.Context, src, rel string) (string, error) {
	dst := m.Target(rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Errorf("creating parent directories for %s: %w", dst, err)
	}

	if err := copyFile(src, dst); err != nil {
		return "", errors.Errorf("copying %s to %s: %w", src, dst, err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", src).Str("target", dst).Msg("relocated file")
	return dst, nil
}

// Helper functions

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return errors.Errorf("target is the source file")
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file content: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	// O_CREATE only applies the mode to new files.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting destination permissions: %w", err)
	}

	return nil
}
