package resampler

import (
	"math"
	"testing"
)

func sine(freq float64, n, rate int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = int16(16000 * math.Sin(2*math.Pi*freq*t))
	}
	return samples
}

func TestResample_SameRate(t *testing.T) {
	in := sine(440, 1600, 16000)
	out, err := Resample(in, 16000, 16000)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if len(out) != len(in) {
		t.Errorf("len = %d; want %d (passthrough)", len(out), len(in))
	}
}

func TestResample_Downsample(t *testing.T) {
	in := sine(440, 48000, 48000) // 1s at 48kHz
	out, err := Resample(in, 48000, 16000)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}

	// Expect roughly 1s at 16kHz; the resampler may hold back a small
	// tail of samples in its filter state.
	if len(out) < 15000 || len(out) > 16100 {
		t.Errorf("len = %d; want ~16000", len(out))
	}
}

func TestResample_Empty(t *testing.T) {
	out, err := Resample(nil, 22050, 16000)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d; want 0", len(out))
	}
}

func TestResample_InvalidRate(t *testing.T) {
	if _, err := Resample([]int16{1}, 0, 16000); err == nil {
		t.Error("Resample(srcRate=0) = nil error; want error")
	}
	if _, err := Resample([]int16{1}, 16000, -1); err == nil {
		t.Error("Resample(dstRate=-1) = nil error; want error")
	}
}
