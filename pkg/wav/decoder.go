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
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-audio/audio"
	"gitlab.com/tozd/go/errors"
)

// Format tags understood by the decoder.
const (
	FormatPCM        uint16 = 0x0001
	FormatIEEEFloat  uint16 = 0x0003
	FormatExtensible uint16 = 0xFFFE
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	fmtBaseSize     = 16
	fmtExtSize      = 40
	readBufferSize  = 64 * 1024
	walkBufferSize  = 4096
)

var (
	byteOrder = binary.LittleEndian
	riffID    = [4]byte{'R', 'I', 'F', 'F'}
	waveID    = [4]byte{'W', 'A', 'V', 'E'}
	fmtID     = [4]byte{'f', 'm', 't', ' '}
	dataID    = [4]byte{'d', 'a', 't', 'a'}
)

// A Decoder walks a WAVE stream: the RIFF header, the fmt chunk and every
// sample of the data chunk. It never seeks, so any io.Reader works.
type Decoder struct {
	r *bufio.Reader

	// Populated by ReadHeader.
	FormatTag  uint16 // effective tag, resolved through WAVE_FORMAT_EXTENSIBLE
	NumChans   uint16
	SampleRate uint32
	BitDepth   uint16
	BlockAlign uint16
	PCMSize    int64 // declared data chunk size in bytes

	headerRead bool
	remaining  int64
	scratch    []byte
	decode     func([]byte) int
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Format returns the stream format. Only meaningful after ReadHeader.
func (d *Decoder) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// ReadHeader parses everything up to the first byte of sample data.
// Chunks other than fmt and data are skipped. Calling it again is a no-op.
func (d *Decoder) ReadHeader() error {
	if d.headerRead {
		return nil
	}

	var hdr [riffHeaderSize]byte
	if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
		if err == io.EOF {
			return errors.Errorf("reading riff header: %w", ErrNotRIFF)
		}
		return errors.Errorf("reading riff header: %w", err)
	}
	if [4]byte(hdr[0:4]) != riffID {
		return ErrNotRIFF
	}
	if [4]byte(hdr[8:12]) != waveID {
		return ErrNotWAVE
	}

	haveFmt := false
	for {
		id, size, err := d.readChunkHeader()
		if err != nil {
			if err == io.EOF {
				if !haveFmt {
					return ErrMissingFormat
				}
				return ErrMissingData
			}
			return errors.Errorf("reading chunk header: %w", err)
		}

		switch id {
		case fmtID:
			if err := d.readFormat(size); err != nil {
				return err
			}
			haveFmt = true
		case dataID:
			if !haveFmt {
				return ErrMissingFormat
			}
			bps := int64(d.BitDepth / 8)
			if size%bps != 0 {
				return errors.Errorf("%w: %d bytes with %d-byte samples", ErrMisaligned, size, bps)
			}
			d.PCMSize = size
			d.remaining = size
			d.headerRead = true
			return nil
		default:
			if err := d.skip(size + size&1); err != nil {
				return errors.Errorf("skipping %q chunk: %w", string(id[:]), err)
			}
		}
	}
}

func (d *Decoder) readChunkHeader() ([4]byte, int64, error) {
	var hdr [chunkHeaderSize]byte
	if _, err := io.ReadFull(d.r, hdr[:]); err != nil {
		return [4]byte{}, 0, err
	}
	return [4]byte(hdr[0:4]), int64(byteOrder.Uint32(hdr[4:8])), nil
}

func (d *Decoder) skip(n int64) error {
	m, err := io.CopyN(io.Discard, d.r, n)
	if err == io.EOF && m < n {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (d *Decoder) readFormat(size int64) error {
	if size < fmtBaseSize {
		return errors.Errorf("%w: chunk is %d bytes", ErrBadFormat, size)
	}
	body := make([]byte, min(size, fmtExtSize))
	if _, err := io.ReadFull(d.r, body); err != nil {
		return errors.Errorf("reading fmt chunk: %w", noEOF(err))
	}
	if rest := size - int64(len(body)) + size&1; rest > 0 {
		if err := d.skip(rest); err != nil {
			return errors.Errorf("reading fmt chunk: %w", err)
		}
	}

	d.FormatTag = byteOrder.Uint16(body[0:2])
	d.NumChans = byteOrder.Uint16(body[2:4])
	d.SampleRate = byteOrder.Uint32(body[4:8])
	d.BlockAlign = byteOrder.Uint16(body[12:14])
	d.BitDepth = byteOrder.Uint16(body[14:16])

	if d.FormatTag == FormatExtensible {
		if size < fmtExtSize {
			return errors.Errorf("%w: extensible chunk is %d bytes", ErrBadFormat, size)
		}
		// The sub-format GUID starts with the effective format tag.
		d.FormatTag = byteOrder.Uint16(body[24:26])
	}

	switch {
	case d.NumChans == 0:
		return errors.Errorf("%w: zero channels", ErrBadFormat)
	case d.SampleRate == 0:
		return errors.Errorf("%w: zero sample rate", ErrBadFormat)
	case d.BitDepth == 0:
		return errors.Errorf("%w: zero bits per sample", ErrBadFormat)
	}

	d.decode = sampleDecodeFunc(d.FormatTag, d.BitDepth)
	if d.decode == nil {
		return errors.Errorf("%w: tag 0x%04x with %d bits", ErrUnsupportedFormat, d.FormatTag, d.BitDepth)
	}

	if want := uint32(d.NumChans) * uint32(d.BitDepth/8); uint32(d.BlockAlign) != want {
		return errors.Errorf("%w: block align %d, want %d", ErrBadFormat, d.BlockAlign, want)
	}
	return nil
}

// PCMBuffer decodes up to len(buf.Data) samples into buf and reports how
// many were written. It returns io.EOF once the data chunk is exhausted and
// a *TruncatedError if the stream ends early.
func (d *Decoder) PCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}
	if err := d.ReadHeader(); err != nil {
		return 0, err
	}
	buf.Format = d.Format()
	buf.SourceBitDepth = int(d.BitDepth)

	if d.remaining == 0 {
		return 0, io.EOF
	}

	bps := int(d.BitDepth / 8)
	want := int64(len(buf.Data) * bps)
	if want > d.remaining {
		want = d.remaining
	}
	if int64(cap(d.scratch)) < want {
		d.scratch = make([]byte, want)
	}
	tmp := d.scratch[:want]

	m, err := io.ReadFull(d.r, tmp)
	n := m / bps
	for i := 0; i < n; i++ {
		buf.Data[i] = d.decode(tmp[i*bps : (i+1)*bps])
	}
	d.remaining -= int64(m)

	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return n, &TruncatedError{Want: d.PCMSize, Got: d.PCMSize - d.remaining}
		}
		return n, errors.Errorf("reading sample data: %w", err)
	}
	return n, nil
}

// Walk decodes the whole stream and returns the number of samples read.
// The first error stops the walk.
func (d *Decoder) Walk() (int64, error) {
	buf := &audio.IntBuffer{Data: make([]int, walkBufferSize)}
	var total int64
	for {
		n, err := d.PCMBuffer(buf)
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// sampleDecodeFunc returns the decoder for one sample of the given
// encoding, or nil if the encoding is not supported.
func sampleDecodeFunc(tag, bits uint16) func([]byte) int {
	switch tag {
	case FormatPCM:
		switch bits {
		case 8:
			return func(b []byte) int { return int(b[0]) - 128 }
		case 16:
			return func(b []byte) int { return int(int16(byteOrder.Uint16(b))) }
		case 24:
			return func(b []byte) int {
				return int(int32(uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16) << 8 >> 8)
			}
		case 32:
			return func(b []byte) int { return int(int32(byteOrder.Uint32(b))) }
		}
	case FormatIEEEFloat:
		switch bits {
		case 32:
			return func(b []byte) int { return scaleFloat(float64(math.Float32frombits(byteOrder.Uint32(b)))) }
		case 64:
			return func(b []byte) int { return scaleFloat(math.Float64frombits(byteOrder.Uint64(b))) }
		}
	}
	return nil
}

// scaleFloat maps [-1, 1] onto the signed 32-bit range, clamping outliers.
func scaleFloat(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= 1:
		return math.MaxInt32
	case f <= -1:
		return -math.MaxInt32
	}
	return int(f * math.MaxInt32)
}
