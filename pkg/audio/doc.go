// Package audio provides audio processing utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: PCM (Pulse Code Modulation) format math and byte conversion
//   - wav: WAV container encoding/decoding for 16-bit mono clips
//   - resampler: pure Go sample rate conversion
package audio
