package hostio

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pocket8/eightball/pkg/audio/wav"
	"github.com/pocket8/eightball/pkg/catalog"
	"github.com/pocket8/eightball/pkg/session"
	"github.com/pocket8/eightball/pkg/storage"
)

func writeClip(t *testing.T, fs storage.FileStore, path string, samples []int16, rate int) {
	t.Helper()
	var buf bytes.Buffer
	if err := wav.Encode(&buf, samples, rate); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := storage.WriteAll(context.Background(), fs, path, buf.Bytes()); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestClipSource_DeviceRate(t *testing.T) {
	fs := storage.NewMem()
	writeClip(t, fs, "clips/yes.wav", []int16{1, 2, 3}, session.SampleRate)

	samples, rate, err := NewClipSource(fs).LoadClip("clips/yes.wav")
	if err != nil {
		t.Fatalf("LoadClip error: %v", err)
	}
	if rate != session.SampleRate {
		t.Errorf("rate = %d; want %d", rate, session.SampleRate)
	}
	if len(samples) != 3 || samples[0] != 1 {
		t.Errorf("samples = %v; want [1 2 3]", samples)
	}
}

func TestClipSource_Resamples(t *testing.T) {
	fs := storage.NewMem()
	src := make([]int16, 48000) // 1s at 48kHz
	for i := range src {
		src[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/48000))
	}
	writeClip(t, fs, "clips/tone.wav", src, 48000)

	samples, rate, err := NewClipSource(fs).LoadClip("clips/tone.wav")
	if err != nil {
		t.Fatalf("LoadClip error: %v", err)
	}
	if rate != session.SampleRate {
		t.Errorf("rate = %d; want %d", rate, session.SampleRate)
	}
	if len(samples) < 15000 || len(samples) > 16100 {
		t.Errorf("resampled length = %d; want ~16000", len(samples))
	}
}

func TestClipSource_Missing(t *testing.T) {
	if _, _, err := NewClipSource(storage.NewMem()).LoadClip("gone.wav"); err == nil {
		t.Error("LoadClip(missing) = nil error; want error")
	}
}

func TestClipSource_Corrupt(t *testing.T) {
	fs := storage.NewMem()
	if err := storage.WriteAll(context.Background(), fs, "bad.wav", []byte("nope")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewClipSource(fs).LoadClip("bad.wav"); err == nil {
		t.Error("LoadClip(corrupt) = nil error; want error")
	}
}

func TestMic_PacedCapture(t *testing.T) {
	m := NewMic([]int16{10, 20, 30})
	if err := m.Begin(); err != nil {
		t.Fatal(err)
	}

	dst := make([]int16, 5)
	if !m.TryCaptureChunk(dst) {
		t.Fatal("first chunk should be due immediately")
	}
	want := []int16{10, 20, 30, 10, 20}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d; want %d (looped source)", i, dst[i], want[i])
		}
	}

	// The next chunk is not due for another 15 ms.
	if m.TryCaptureChunk(dst) {
		t.Error("second chunk produced without waiting")
	}
	time.Sleep(20 * time.Millisecond)
	if !m.TryCaptureChunk(dst) {
		t.Error("chunk not produced after its interval elapsed")
	}
}

func TestMic_NoiseSource(t *testing.T) {
	m := NewMic(nil)
	if err := m.Begin(); err != nil {
		t.Fatal(err)
	}

	dst := make([]int16, session.ChunkSamples)
	if !m.TryCaptureChunk(dst) {
		t.Fatal("chunk not produced")
	}
	var nonZero int
	for _, s := range dst {
		if s != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("noise source produced pure silence")
	}
}

func TestSpeaker_Timing(t *testing.T) {
	s := NewSpeaker(nil, "")
	s.SetVolume(200)

	if s.IsPlaying() {
		t.Error("IsPlaying before Play")
	}
	// 800 samples at 16kHz = 50ms of audio.
	if err := s.Play(make([]int16, 800), 16000); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if !s.IsPlaying() {
		t.Error("IsPlaying = false right after Play")
	}

	if err := s.End(); err != nil {
		t.Fatal(err)
	}
	if s.IsPlaying() {
		t.Error("IsPlaying after End")
	}
}

func TestSpeaker_Tee(t *testing.T) {
	fs := storage.NewMem()
	s := NewSpeaker(fs, "out/last.wav")

	if err := s.Play([]int16{5, 6, 7}, 16000); err != nil {
		t.Fatalf("Play error: %v", err)
	}

	data, err := storage.ReadAll(context.Background(), fs, "out/last.wav")
	if err != nil {
		t.Fatalf("tee not written: %v", err)
	}
	clip, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("tee not a wav: %v", err)
	}
	if len(clip.Samples) != 3 || clip.SampleRate != 16000 {
		t.Errorf("tee clip = %d samples at %d; want 3 at 16000",
			len(clip.Samples), clip.SampleRate)
	}
}

func TestRender(t *testing.T) {
	st := DefaultStyles()

	t.Run("idle", func(t *testing.T) {
		out := renderIdle(st)
		if !strings.Contains(out, "MAGIC EIGHT BALL") {
			t.Errorf("idle frame missing title: %q", out)
		}
	})

	t.Run("text input cursor", func(t *testing.T) {
		with := renderTextInput(st, "hello", true)
		without := renderTextInput(st, "hello", false)
		if !strings.Contains(with, "hello_") {
			t.Errorf("visible cursor missing: %q", with)
		}
		if strings.Contains(without, "hello_") {
			t.Errorf("hidden cursor rendered: %q", without)
		}
	})

	t.Run("voice progress", func(t *testing.T) {
		out := renderVoiceInput(st, 50, make([]int16, session.ChunkSamples))
		if !strings.Contains(out, " 50%") {
			t.Errorf("progress missing: %q", out)
		}
	})

	t.Run("thinking dots", func(t *testing.T) {
		if out := renderThinking(st, 3); !strings.Contains(out, "Thinking...") {
			t.Errorf("dots missing: %q", out)
		}
		if out := renderThinking(st, 0); strings.Contains(out, "Thinking.") {
			t.Errorf("unexpected dots: %q", out)
		}
	})

	t.Run("answer audio flag", func(t *testing.T) {
		with := renderAnswer(st, catalog.Response{Text: "Yes", WAV: "x.wav"})
		without := renderAnswer(st, catalog.Response{Text: "Yes"})
		if !strings.Contains(with, "[AUDIO]") {
			t.Errorf("audio marker missing: %q", with)
		}
		if strings.Contains(without, "[AUDIO]") {
			t.Errorf("unexpected audio marker: %q", without)
		}
	})
}

func TestWaveform(t *testing.T) {
	flat := waveform(make([]int16, 240), 40)
	if len([]rune(flat)) != 40 {
		t.Errorf("waveform width = %d; want 40", len([]rune(flat)))
	}

	loud := make([]int16, 240)
	for i := range loud {
		loud[i] = 32000
	}
	if waveform(loud, 40) == flat {
		t.Error("loud and silent waveforms render identically")
	}
}
