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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/wavsort/pkg/wav"
	"gitlab.com/tozd/go/errors"
)

// ✅ Check opens path and decodes its header and every sample. It returns
// the first error encountered, or nil if the file is complete. The file is
// only read.
func Check(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if err := dec.ReadHeader(); err != nil {
		return errors.Errorf("reading header: %w", err)
	}

	samples, err := dec.Walk()
	if err != nil {
		return errors.Errorf("decoding samples: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", path).
		Uint16("channels", dec.NumChans).
		Uint32("sample_rate", dec.SampleRate).
		Uint16("bit_depth", dec.BitDepth).
		Int64("samples", samples).
		Msg("decoded file")

	return nil
}
