// Package seed derives 32-bit selection seeds from user input.
//
// The appliance answers a question by hashing whatever the user gave it
// (typed text or a short voice recording) together with a monotonic
// millisecond clock reading, then reducing the result to a catalog
// index. The mixing is cheap and data dependent; the goal is variety
// for a novelty toy, not cryptographic strength. Time is the only
// impure input and is passed explicitly, so every function here is
// deterministic for a fixed clock value.
package seed

import "math"

// FromText derives a seed from a typed question using a DJB2-style
// rolling hash. ASCII letters are case folded; all other byte values
// pass through unchanged. The clock reading is XOR-mixed in and the
// result is run through an avalanche finisher so that small input
// changes spread across the whole word.
func FromText(question string, nowMS uint32) uint32 {
	acc := uint32(5381)
	for i := 0; i < len(question); i++ {
		c := question[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		acc = acc*33 + uint32(c)
	}
	acc ^= nowMS

	acc ^= acc >> 16
	acc *= 0x85ebca6b
	acc ^= acc >> 13
	return acc
}

// FromAudio derives a seed from a fully populated voice recording by
// combining three waveform features: peak absolute amplitude, the
// count of zero-crossing transitions (zero counts as non-negative),
// and root-mean-square energy. The caller must pass a non-empty,
// fully recorded buffer.
func FromAudio(samples []int16, nowMS uint32) uint32 {
	var peak uint32
	for _, s := range samples {
		abs := uint32(s)
		if s < 0 {
			abs = uint32(-int32(s))
		}
		if abs > peak {
			peak = abs
		}
	}
	seed := peak

	var crossings uint32
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if (prev < 0 && cur >= 0) || (prev >= 0 && cur < 0) {
			crossings++
		}
	}
	seed ^= crossings << 8

	// 64-bit accumulation: n is ~32k and each square is up to 2^30,
	// which overflows 32 bits long before the buffer ends.
	var sumSquares uint64
	for _, s := range samples {
		sumSquares += uint64(int64(s) * int64(s))
	}
	rms := uint32(math.Sqrt(float64(sumSquares / uint64(len(samples)))))
	seed ^= rms << 16

	seed ^= nowMS
	return seed
}

// Select reduces a seed to a catalog index by modulo. n must be > 0;
// the boot contract guarantees a non-empty catalog before the state
// machine runs.
func Select(seed uint32, n int) int {
	return int(seed % uint32(n))
}
