// Package resampler converts mono 16-bit PCM audio between sample
// rates using a pure Go resampler (no CGO/FFI dependencies).
package resampler

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample converts samples from srcRate to dstRate.
// When the rates match the input is returned unchanged.
func Resample(samples []int16, srcRate, dstRate int) ([]int16, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("resampler: invalid rates %d -> %d", srcRate, dstRate)
	}
	if srcRate == dstRate || len(samples) == 0 {
		return samples, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(srcRate),
		OutputRate: float64(dstRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resampler: create: %w", err)
	}

	input := make([]float64, len(samples))
	for i, s := range samples {
		input[i] = float64(s) / 32768.0
	}

	output, err := rs.Process(input)
	if err != nil {
		return nil, fmt.Errorf("resampler: process: %w", err)
	}

	out := make([]int16, len(output))
	for i, v := range output {
		switch {
		case v > 1.0:
			out[i] = 32767
		case v < -1.0:
			out[i] = -32768
		default:
			out[i] = int16(v * 32767.0)
		}
	}
	return out, nil
}
