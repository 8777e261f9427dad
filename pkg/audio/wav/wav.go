// Package wav encodes and decodes 16-bit mono PCM audio in the WAV
// container format. Only the canonical RIFF/fmt/data layout used by the
// appliance's response clips is supported.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pocket8/eightball/pkg/audio/pcm"
)

// HeaderSize is the size in bytes of the canonical WAV header produced
// by Encode: RIFF descriptor, fmt chunk, and data chunk header.
const HeaderSize = 44

// ErrFormat indicates data that is not a supported WAV stream.
var ErrFormat = errors.New("wav: unsupported or malformed stream")

// Clip is a decoded audio clip.
type Clip struct {
	// Samples holds the PCM samples, one channel.
	Samples []int16

	// SampleRate is the clip's sample rate in Hz.
	SampleRate int
}

// Duration returns the playback duration of the clip.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Encode writes samples as a canonical 44-byte-header WAV stream.
func Encode(w io.Writer, samples []int16, sampleRate int) error {
	data := pcm.Bytes(samples)

	var hdr [HeaderSize]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(36+len(data)))
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(hdr[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(sampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(hdr[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(hdr[34:36], 16)                   // bits per sample
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], uint32(len(data)))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wav: write data: %w", err)
	}
	return nil
}

// Decode reads a WAV stream and returns the decoded clip.
// The stream must be 16-bit mono PCM; chunks other than fmt and data
// (LIST, fact, ...) are skipped.
func Decode(r io.Reader) (*Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: short riff header", ErrFormat)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE marker", ErrFormat)
	}

	var (
		sampleRate int
		haveFmt    bool
	)
	for {
		var ch [8]byte
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			return nil, fmt.Errorf("%w: missing data chunk", ErrFormat)
		}
		id := string(ch[0:4])
		size := binary.LittleEndian.Uint32(ch[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too small", ErrFormat)
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrFormat)
			}
			format := binary.LittleEndian.Uint16(buf[0:2])
			channels := binary.LittleEndian.Uint16(buf[2:4])
			rate := binary.LittleEndian.Uint32(buf[4:8])
			bits := binary.LittleEndian.Uint16(buf[14:16])
			if format != 1 {
				return nil, fmt.Errorf("%w: audio format %d, want PCM", ErrFormat, format)
			}
			if channels != 1 {
				return nil, fmt.Errorf("%w: %d channels, want mono", ErrFormat, channels)
			}
			if bits != 16 {
				return nil, fmt.Errorf("%w: %d bits per sample, want 16", ErrFormat, bits)
			}
			sampleRate = int(rate)
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt", ErrFormat)
			}
			data := make([]byte, size)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("%w: short data chunk", ErrFormat)
			}
			return &Clip{Samples: pcm.Samples(data), SampleRate: sampleRate}, nil

		default:
			// Chunks are word aligned; skip the padding byte for odd sizes.
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, fmt.Errorf("%w: short %q chunk", ErrFormat, id)
			}
		}
	}
}
