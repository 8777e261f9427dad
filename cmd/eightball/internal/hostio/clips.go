// Package hostio provides the concrete port implementations the
// appliance binary plugs into the session machine: a terminal display
// and keyboard, a microphone fed from a WAV file or synthesized noise,
// a wall-clock-paced speaker, and a file-store-backed clip source.
package hostio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pocket8/eightball/pkg/audio/resampler"
	"github.com/pocket8/eightball/pkg/audio/wav"
	"github.com/pocket8/eightball/pkg/session"
	"github.com/pocket8/eightball/pkg/storage"
)

// ClipSource loads response audio clips from a file store and converts
// them to the device sample rate.
type ClipSource struct {
	fs storage.FileStore
}

// NewClipSource creates a clip source backed by fs.
func NewClipSource(fs storage.FileStore) *ClipSource {
	return &ClipSource{fs: fs}
}

// LoadClip reads and decodes the named WAV resource, resampling to the
// device rate when the clip was authored at a different one.
func (s *ClipSource) LoadClip(path string) ([]int16, int, error) {
	data, err := storage.ReadAll(context.Background(), s.fs, path)
	if err != nil {
		return nil, 0, fmt.Errorf("hostio: open clip %s: %w", path, err)
	}

	clip, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("hostio: decode clip %s: %w", path, err)
	}

	samples := clip.Samples
	if clip.SampleRate != session.SampleRate {
		samples, err = resampler.Resample(samples, clip.SampleRate, session.SampleRate)
		if err != nil {
			return nil, 0, fmt.Errorf("hostio: resample clip %s: %w", path, err)
		}
	}
	return samples, session.SampleRate, nil
}
