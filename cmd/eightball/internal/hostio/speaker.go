package hostio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocket8/eightball/pkg/audio/wav"
	"github.com/pocket8/eightball/pkg/storage"
)

// Speaker implements session.PlaybackPort by pacing playback against
// the wall clock: IsPlaying stays true for the clip's real duration.
// When a tee path is configured the played audio is also written to
// the file store as a WAV file, which is the closest a headless host
// gets to actually hearing the answer.
type Speaker struct {
	fs      storage.FileStore
	teePath string

	volume int
	endAt  time.Time
}

// NewSpeaker creates a speaker. fs and teePath are optional; when both
// are set, played clips are recorded to teePath.
func NewSpeaker(fs storage.FileStore, teePath string) *Speaker {
	return &Speaker{fs: fs, teePath: teePath}
}

// Begin powers on the device.
func (s *Speaker) Begin() error { return nil }

// SetVolume sets the output level (0..255).
func (s *Speaker) SetVolume(level int) { s.volume = level }

// Play starts playing the samples; completion is observed via IsPlaying.
func (s *Speaker) Play(samples []int16, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("hostio: invalid sample rate %d", sampleRate)
	}
	dur := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)
	s.endAt = time.Now().Add(dur)

	if s.fs != nil && s.teePath != "" {
		var buf bytes.Buffer
		if err := wav.Encode(&buf, samples, sampleRate); err != nil {
			slog.Warn("hostio: encode tee failed", "error", err)
		} else if err := storage.WriteAll(context.Background(), s.fs, s.teePath, buf.Bytes()); err != nil {
			slog.Warn("hostio: write tee failed", "path", s.teePath, "error", err)
		}
	}
	return nil
}

// IsPlaying reports whether the current clip is still within its
// real-time playback window.
func (s *Speaker) IsPlaying() bool {
	return time.Now().Before(s.endAt)
}

// End stops playback immediately and powers off the device.
func (s *Speaker) End() error {
	s.endAt = time.Time{}
	return nil
}
