/*
Package wav walks RIFF/WAVE streams far enough to prove they are complete.

	+-----------+     +-----------+     +-----------+
	|   RIFF    | --> |   fmt     | --> |   data    |
	|  header   |     |  chunk    |     | (samples) |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Parse the RIFF header and locate the fmt and data chunks
- Decode every sample of the data chunk at its declared width
- Report the first structural problem as a typed error

🔄 Flow:
1. ReadHeader checks the RIFF/WAVE tags and walks chunks, skipping unknown ones
2. The fmt chunk is validated (channels, rate, bit depth, block align)
3. PCMBuffer fills go-audio IntBuffers until the data chunk is exhausted
4. Walk drives PCMBuffer to the end of the stream

Supported encodings are integer PCM (8/16/24/32-bit) and IEEE float
(32/64-bit), either directly or through WAVE_FORMAT_EXTENSIBLE. Samples are
decoded into int; float samples are scaled to the signed 32-bit range.
Nothing is ever written and the stream is never seeked.
*/
package wav
