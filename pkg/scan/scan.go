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

// Package scan enumerates the WAVE files under an input root.
package scan

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Extension is the only file extension considered, matched case-sensitively.
const Extension = ".wav"

// 📄 Candidate is a file found under the input root
type Candidate struct {
	Path string // path under the root as given by the caller
	Rel  string // path relative to the root
}

// 🔧 Options tunes the walk
type Options struct {
	// Ignore holds doublestar patterns matched against slash-separated
	// relative paths. Matching directories are pruned.
	Ignore []string
}

// 🔍 Walk yields every regular file under root whose name ends in Extension.
// Symlinks below the root are never followed and unreadable entries are
// skipped. The only error yielded is a failure to compute a relative path,
// after which the sequence ends.
func Walk(ctx context.Context, root string, opts Options) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		logger := zerolog.Ctx(ctx)
		walkRoot := resolveRoot(root)

		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}

			if d.IsDir() {
				if path != walkRoot && len(opts.Ignore) > 0 {
					if rel, err := filepath.Rel(walkRoot, path); err == nil && ignored(opts.Ignore, rel) {
						logger.Debug().Str("path", path).Msg("directory ignored by pattern")
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !d.Type().IsRegular() || !HasExtension(d.Name()) {
				return nil
			}

			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				yield(Candidate{}, errors.Errorf("computing relative path for %s: %w", path, err))
				return filepath.SkipAll
			}

			if ignored(opts.Ignore, rel) {
				logger.Debug().Str("path", path).Msg("file ignored by pattern")
				return nil
			}

			if !yield(Candidate{Path: filepath.Join(root, rel), Rel: rel}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// HasExtension reports whether name carries Extension. A bare ".wav"
// dotfile has no extension.
func HasExtension(name string) bool {
	ext := filepath.Ext(name)
	return ext == Extension && name != ext
}

// resolveRoot follows the root itself when it is a symlink, so a linked
// input directory is still scanned. Links below the root are left alone.
func resolveRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return root
	}
	return resolved
}

func ignored(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
