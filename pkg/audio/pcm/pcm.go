// Package pcm provides format math and byte conversion helpers for raw
// 16-bit little-endian PCM audio.
package pcm

import (
	"encoding/binary"
	"time"
)

// L16Mono16K represents audio/L16; rate=16000; channels=1, the device
// format all capture and playback is carried in.
const L16Mono16K Format = iota

// Format represents an audio format configuration.
type Format int

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	switch f {
	case L16Mono16K:
		return 16000
	}
	panic("pcm: invalid audio format")
}

// Channels returns the number of audio channels for this format.
func (f Format) Channels() int {
	switch f {
	case L16Mono16K:
		return 1
	}
	panic("pcm: invalid audio format")
}

// Depth returns the bit depth for this format.
func (f Format) Depth() int {
	switch f {
	case L16Mono16K:
		return 16
	}
	panic("pcm: invalid audio format")
}

// Duration returns the playback duration of the given number of samples.
func (f Format) Duration(samples int) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(f.SampleRate())
}

// Bytes encodes samples as little-endian 16-bit PCM data.
func Bytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

// Samples decodes little-endian 16-bit PCM data into samples.
// A trailing odd byte is ignored.
func Samples(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
