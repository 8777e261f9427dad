package hostio

import (
	"time"

	"github.com/pocket8/eightball/pkg/audio/pcm"
	"github.com/pocket8/eightball/pkg/session"
)

// Mic implements session.CapturePort without capture hardware. Chunks
// are produced at the real-time rate of the device microphone (one
// 240-sample chunk per 15 ms at 16 kHz) so recording takes as long as
// it would on the appliance. Samples come from a configured source
// buffer, looped, or from a cheap noise generator when none is set.
type Mic struct {
	source []int16
	pos    int

	chunkEvery time.Duration
	next       time.Time

	noise uint32
}

// NewMic creates a microphone producing samples from source. A nil or
// empty source synthesizes low-level noise instead.
func NewMic(source []int16) *Mic {
	return &Mic{
		source:     source,
		chunkEvery: pcm.L16Mono16K.Duration(session.ChunkSamples),
		noise:      0x8ba11,
	}
}

// Begin starts a recording pass.
func (m *Mic) Begin() error {
	m.next = time.Now()
	return nil
}

// End stops the recording pass.
func (m *Mic) End() error { return nil }

// TryCaptureChunk fills dst with the next chunk if one is due, pacing
// production to real time. It reports whether a chunk was produced.
func (m *Mic) TryCaptureChunk(dst []int16) bool {
	now := time.Now()
	if now.Before(m.next) {
		return false
	}
	m.next = m.next.Add(m.chunkEvery)
	if m.next.Before(now) {
		// Fell behind (host stall); don't burst to catch up.
		m.next = now.Add(m.chunkEvery)
	}

	if len(m.source) > 0 {
		for i := range dst {
			dst[i] = m.source[m.pos]
			m.pos = (m.pos + 1) % len(m.source)
		}
		return true
	}
	for i := range dst {
		m.noise = m.noise*1664525 + 1013904223
		dst[i] = int16(m.noise>>16) / 16
	}
	return true
}
