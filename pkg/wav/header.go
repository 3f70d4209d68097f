// Package wav frames raw interleaved samples as a RIFF/WAVE file.
package wav

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	HeaderSize = 44

	// FormatIEEEFloat is the fmt chunk audio format code for float samples.
	FormatIEEEFloat = 3

	fmtChunkSize = 16

	// MaxDataSize is the largest data chunk the 32-bit RIFF size field can describe.
	MaxDataSize = math.MaxUint32 - (HeaderSize - 8)
)

// Header returns the 44-byte header to prepend to dataSize bytes of
// interleaved IEEE float samples. Inputs are trusted.
func Header(sampleRate, channelCount, bitsPerSample, dataSize int) []byte {
	byteRate := sampleRate * channelCount * bitsPerSample / 8
	blockAlign := channelCount * bitsPerSample / 8

	header := make([]byte, HeaderSize)
	le := binary.LittleEndian

	copy(header[0:4], "RIFF")
	le.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	le.PutUint32(header[16:20], fmtChunkSize)
	le.PutUint16(header[20:22], FormatIEEEFloat)
	le.PutUint16(header[22:24], uint16(channelCount))
	le.PutUint32(header[24:28], uint32(sampleRate))
	le.PutUint32(header[28:32], uint32(byteRate))
	le.PutUint16(header[32:34], uint16(blockAlign))
	le.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	le.PutUint32(header[40:44], uint32(dataSize))

	return header
}

// Float32DataSize is the data chunk size for samples encoded as 32-bit floats.
func Float32DataSize(samples []float32) int {
	return len(samples) * 4
}

// NewFloat32Reader streams samples as little-endian 32-bit floats, encoding
// them only as they are read.
func NewFloat32Reader(samples []float32) io.Reader {
	return &float32Reader{samples: samples}
}

type float32Reader struct {
	samples []float32
	buf     [4]byte
	pending int
}

func (r *float32Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.pending == 0 {
			if len(r.samples) == 0 {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			binary.LittleEndian.PutUint32(r.buf[:], math.Float32bits(r.samples[0]))
			r.samples = r.samples[1:]
			r.pending = len(r.buf)
		}
		copied := copy(p[n:], r.buf[len(r.buf)-r.pending:])
		r.pending -= copied
		n += copied
	}
	return n, nil
}
