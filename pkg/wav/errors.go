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

package wav

import (
	"io"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotRIFF is returned when the stream does not start with a RIFF tag.
	ErrNotRIFF = errors.Base("missing RIFF tag")
	// ErrNotWAVE is returned when the RIFF form type is not WAVE.
	ErrNotWAVE = errors.Base("RIFF form type is not WAVE")
	// ErrMissingFormat is returned when no fmt chunk precedes the data chunk.
	ErrMissingFormat = errors.Base("fmt chunk not found before data chunk")
	// ErrMissingData is returned when the stream ends without a data chunk.
	ErrMissingData = errors.Base("data chunk not found")
	// ErrBadFormat is returned when the fmt chunk is structurally inconsistent.
	ErrBadFormat = errors.Base("malformed fmt chunk")
	// ErrUnsupportedFormat is returned for encodings the decoder cannot walk.
	ErrUnsupportedFormat = errors.Base("unsupported sample encoding")
	// ErrMisaligned is returned when the data chunk length is not a whole number of samples.
	ErrMisaligned = errors.Base("data chunk length is not a multiple of the sample size")
)

// TruncatedError is returned when the stream ends before the data chunk
// delivers the number of bytes its header declares.
type TruncatedError struct {
	Want int64 // declared data chunk size
	Got  int64 // bytes actually read
}

func (te *TruncatedError) Error() string {
	return "data chunk truncated: got " + strconv.FormatInt(te.Got, 10) +
		" of " + strconv.FormatInt(te.Want, 10) + " bytes"
}

// Unwrap lets callers match truncation with errors.Is(err, io.ErrUnexpectedEOF).
func (te *TruncatedError) Unwrap() error {
	return io.ErrUnexpectedEOF
}
