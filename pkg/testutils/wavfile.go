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

// Package testutils builds WAVE fixtures and file trees for tests.
package testutils

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// 🧩 Chunk is an extra RIFF chunk written before the data chunk
type Chunk struct {
	ID      string
	Payload []byte
}

// 🎵 WAVSpec describes a fixture file
type WAVSpec struct {
	FormatTag  uint16 // 1 PCM, 3 float, 0xFFFE extensible
	SubFormat  uint16 // effective tag when FormatTag is extensible
	Channels   uint16
	SampleRate uint32
	BitDepth   uint16
	Frames     int     // sample frames in the data chunk
	Extra      []Chunk // chunks between fmt and data
	ShortData  int     // declared data size is kept, this many payload bytes are dropped
}

// 🎯 PCM16Mono is the fixture used across tests: 16-bit mono PCM
func PCM16Mono(frames int) WAVSpec {
	return WAVSpec{FormatTag: 1, Channels: 1, SampleRate: 44100, BitDepth: 16, Frames: frames}
}

// 🏗️ Build encodes s as a WAVE file
func Build(s WAVSpec) []byte {
	le := binary.LittleEndian

	var fmtBody bytes.Buffer
	blockAlign := s.Channels * (s.BitDepth / 8)
	binary.Write(&fmtBody, le, s.FormatTag)
	binary.Write(&fmtBody, le, s.Channels)
	binary.Write(&fmtBody, le, s.SampleRate)
	binary.Write(&fmtBody, le, s.SampleRate*uint32(blockAlign))
	binary.Write(&fmtBody, le, blockAlign)
	binary.Write(&fmtBody, le, s.BitDepth)
	if s.FormatTag == 0xFFFE {
		binary.Write(&fmtBody, le, uint16(22))
		binary.Write(&fmtBody, le, s.BitDepth)
		binary.Write(&fmtBody, le, uint32(0))
		binary.Write(&fmtBody, le, s.SubFormat)
		fmtBody.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}

	dataSize := s.Frames * int(blockAlign)
	data := make([]byte, dataSize)
	for i := range data {
		data[i] = byte(i * 7)
	}

	var body bytes.Buffer
	body.WriteString("WAVE")
	writeChunk(&body, "fmt ", fmtBody.Bytes())
	for _, c := range s.Extra {
		writeChunk(&body, c.ID, c.Payload)
	}
	body.WriteString("data")
	binary.Write(&body, le, uint32(dataSize))
	body.Write(data[:dataSize-min(s.ShortData, dataSize)])

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, le, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeChunk(buf *bytes.Buffer, id string, payload []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

// 📝 WriteFile writes data at root/rel, creating parent directories
func WriteFile(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating fixture directory")
	require.NoError(t, os.WriteFile(path, data, 0o644), "writing fixture")
	return path
}

// 🌳 Tree writes the scenario tree used by the sorter and CLI tests:
// a/b/ok.wav (valid, 100 samples), a/c/bad.wav (truncated mid-sample) and notes.txt
func Tree(t *testing.T, root string) (ok, bad []byte) {
	t.Helper()
	ok = Build(PCM16Mono(100))
	bad = Build(WAVSpec{FormatTag: 1, Channels: 1, SampleRate: 44100, BitDepth: 16, Frames: 100, ShortData: 51})
	WriteFile(t, root, "a/b/ok.wav", ok)
	WriteFile(t, root, "a/c/bad.wav", bad)
	WriteFile(t, root, "notes.txt", []byte("not audio\n"))
	return ok, bad
}
