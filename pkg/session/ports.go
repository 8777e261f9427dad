package session

import "github.com/pocket8/eightball/pkg/catalog"

// KeyEvent is a single discrete key press from the input device.
// Exactly one of Rune, Enter, or Backspace is meaningful per event.
type KeyEvent struct {
	// Rune is the printable ASCII code (0x20..0x7e), 0 for special keys.
	Rune byte

	// Enter flags the enter/return key.
	Enter bool

	// Backspace flags the backspace/delete key.
	Backspace bool
}

// Printable reports whether the event carries a printable character.
func (e KeyEvent) Printable() bool {
	return e.Rune >= 0x20 && e.Rune <= 0x7e
}

// InputPort exposes the host's keyboard, primary button, and monotonic
// clock to the machine. The machine polls; nothing is interrupt driven.
type InputPort interface {
	// PollKey returns the next pending key event, if any.
	PollKey() (KeyEvent, bool)

	// ButtonPressed reports whether the primary button was pressed
	// since the last call (press edge, consumed by reading).
	ButtonPressed() bool

	// NowMillis returns the current monotonic time in milliseconds.
	// Wraparound is fine; elapsed checks use modular subtraction.
	NowMillis() uint32
}

// CapturePort is the microphone side of the host's audio hardware.
type CapturePort interface {
	// Begin starts the capture device.
	Begin() error

	// End stops the capture device.
	End() error

	// TryCaptureChunk attempts to fill dst with one chunk of samples
	// without blocking. It reports whether a chunk was produced.
	TryCaptureChunk(dst []int16) bool
}

// PlaybackPort is the speaker side of the host's audio hardware.
// Play initiates playback; completion is observed by polling IsPlaying.
type PlaybackPort interface {
	// Begin powers on the playback device.
	Begin() error

	// SetVolume sets the output level (0..255).
	SetVolume(level int)

	// Play starts playing the samples at the given rate and returns
	// without waiting for completion.
	Play(samples []int16, sampleRate int) error

	// IsPlaying reports whether playback is still in progress.
	IsPlaying() bool

	// End stops playback and powers off the device.
	End() error
}

// Display receives one render call per UI state, carrying only the
// information that state needs. Layout is the implementation's concern.
type Display interface {
	// ShowIdle renders the idle prompt.
	ShowIdle()

	// ShowTextInput renders the question being typed and the cursor.
	ShowTextInput(question string, cursorVisible bool)

	// ShowVoiceInput renders recording progress (0..100) and the most
	// recently captured chunk for a live waveform.
	ShowVoiceInput(percent int, chunk []int16)

	// ShowThinking renders the thinking animation with dots dots (0..3).
	ShowThinking(dots int)

	// ShowAnswer renders the selected answer.
	ShowAnswer(r catalog.Response)
}

// ClipSource resolves a response's audio reference to playable samples.
type ClipSource interface {
	// LoadClip returns the samples and sample rate for the named
	// resource. Missing or corrupt resources return an error; the
	// machine logs and skips playback, it never surfaces this to the
	// user.
	LoadClip(path string) (samples []int16, sampleRate int, err error)
}
