package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pocket8/eightball/pkg/catalog"
	"github.com/pocket8/eightball/pkg/seed"
)

// Recording geometry: 134 chunks of 240 samples at 16 kHz, ~2.01 s of
// audio per voice question.
const (
	RecordChunks  = 134
	ChunkSamples  = 240
	RecordSamples = RecordChunks * ChunkSamples
	SampleRate    = 16000
)

// DefaultVolume is the playback level used when none is configured.
const DefaultVolume = 255

const (
	thinkingMillis   = 2000
	answerMillis     = 5000
	blinkMillis      = 500
	playbackPollWait = 10 * time.Millisecond
)

// Params configures a Machine. Catalog and all ports are required;
// Clips may be nil only if no catalog entry references audio.
type Params struct {
	Catalog  *catalog.Catalog
	Input    InputPort
	Capture  CapturePort
	Playback PlaybackPort
	Display  Display
	Clips    ClipSource

	// Volume is the playback level (0..255). Zero means DefaultVolume.
	Volume int
}

// Machine is the session state machine. It owns the question buffer,
// the recording buffer, and the selected answer index; all mutation
// happens inside Tick on the host's polling goroutine.
type Machine struct {
	cat      *catalog.Catalog
	in       InputPort
	capture  CapturePort
	playback PlaybackPort
	display  Display
	clips    ClipSource
	volume   int

	// sleep is the playback poll wait, replaceable in tests.
	sleep func(time.Duration)

	state       State
	question    []byte
	recording   *RecordBuffer
	selected    int
	round       string
	entryMS     uint32
	audioPlayed bool

	cursorVisible bool
	lastBlinkMS   uint32
	lastDots      int
}

// NewMachine creates a machine in the idle state. The catalog must be
// non-empty; the boot contract guarantees this before the machine is
// constructed.
func NewMachine(p Params) (*Machine, error) {
	if p.Catalog == nil || p.Catalog.Len() == 0 {
		return nil, errors.New("session: catalog must have at least one response")
	}
	if p.Input == nil || p.Capture == nil || p.Playback == nil || p.Display == nil {
		return nil, errors.New("session: all ports are required")
	}
	volume := p.Volume
	if volume == 0 {
		volume = DefaultVolume
	}
	return &Machine{
		cat:           p.Catalog,
		in:            p.Input,
		capture:       p.Capture,
		playback:      p.Playback,
		display:       p.Display,
		clips:         p.Clips,
		volume:        volume,
		sleep:         time.Sleep,
		state:         StateIdle,
		cursorVisible: true,
		lastDots:      -1,
	}, nil
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Question returns the current question text buffer.
func (m *Machine) Question() string { return string(m.question) }

// Selected returns the selected answer index. Valid from the thinking
// state onward.
func (m *Machine) Selected() int { return m.selected }

// Start renders the idle prompt. Call once before the tick loop.
func (m *Machine) Start() {
	m.lastBlinkMS = m.in.NowMillis()
	m.display.ShowIdle()
	slog.Info("session: ready", "responses", m.cat.Len())
}

// Tick advances the machine by one poll interval: it consumes pending
// input events, checks timers, and performs any due transitions and
// renders. The host calls this every ~10 ms.
func (m *Machine) Tick() {
	now := m.in.NowMillis()

	// Cursor blink is cross-cutting: the phase flips every 500 ms in
	// every state and forces a repaint while typing.
	if now-m.lastBlinkMS >= blinkMillis {
		m.cursorVisible = !m.cursorVisible
		m.lastBlinkMS = now
		if m.state == StateTextInput {
			m.display.ShowTextInput(string(m.question), m.cursorVisible)
		}
	}

	switch m.state {
	case StateIdle:
		m.tickIdle(now)
	case StateTextInput:
		m.tickTextInput(now)
	case StateVoiceInput:
		m.tickVoiceInput(now)
	case StateThinking:
		m.tickThinking(now)
	case StateShowingAnswer:
		m.tickShowingAnswer(now)
	}
}

func (m *Machine) tickIdle(now uint32) {
	for {
		ev, ok := m.in.PollKey()
		if !ok {
			break
		}
		if ev.Printable() {
			m.question = append(m.question[:0], ev.Rune)
			m.state = StateTextInput
			m.display.ShowTextInput(string(m.question), m.cursorVisible)
			return
		}
	}

	if m.in.ButtonPressed() {
		m.startRecording(now)
	}
}

func (m *Machine) tickTextInput(now uint32) {
	for {
		ev, ok := m.in.PollKey()
		if !ok {
			break
		}
		switch {
		case ev.Backspace:
			if len(m.question) > 0 {
				m.question = m.question[:len(m.question)-1]
				m.display.ShowTextInput(string(m.question), m.cursorVisible)
			}
		case ev.Enter:
			if len(m.question) > 0 {
				m.submitText(now)
				return
			}
		case ev.Printable():
			m.question = append(m.question, ev.Rune)
			m.display.ShowTextInput(string(m.question), m.cursorVisible)
		}
	}

	if m.in.ButtonPressed() && len(m.question) > 0 {
		m.submitText(now)
	}
}

func (m *Machine) tickVoiceInput(now uint32) {
	dst, ok := m.rec().NextChunk()
	if !ok {
		m.finishRecording(now)
		return
	}
	if !m.capture.TryCaptureChunk(dst) {
		// No chunk available this tick; try again next tick.
		return
	}
	m.rec().Commit()

	if m.rec().Full() {
		m.finishRecording(now)
		return
	}
	m.display.ShowVoiceInput(m.rec().Progress(), m.rec().LastChunk())
}

func (m *Machine) tickThinking(now uint32) {
	dots := int(now/blinkMillis) % 4
	if dots != m.lastDots {
		m.lastDots = dots
		m.display.ShowThinking(dots)
	}

	if now-m.entryMS >= thinkingMillis {
		m.enterShowingAnswer(now)
	}
}

func (m *Machine) tickShowingAnswer(now uint32) {
	if !m.audioPlayed {
		m.audioPlayed = true
		r := m.cat.At(m.selected)
		if m.playAnswerAudio(r) {
			// Skipped mid-playback; go straight back to idle.
			m.enterIdle()
			return
		}
		// The answer timeout starts once playback is done (or was
		// skipped entirely because the entry has no audio).
		m.entryMS = m.in.NowMillis()
		return
	}

	if m.in.ButtonPressed() || now-m.entryMS >= answerMillis {
		m.enterIdle()
	}
}

// startRecording resets the recording buffer, starts the microphone,
// and enters the voice input state.
func (m *Machine) startRecording(now uint32) {
	m.rec().Reset()
	if err := m.capture.Begin(); err != nil {
		slog.Error("session: capture begin failed", "error", err)
		return
	}
	m.state = StateVoiceInput
	m.entryMS = now
	m.display.ShowVoiceInput(0, nil)
	slog.Debug("session: recording started",
		"chunks", RecordChunks, "chunk_samples", ChunkSamples)
}

// finishRecording stops the microphone, derives the seed from the full
// buffer, and enters the thinking state.
func (m *Machine) finishRecording(now uint32) {
	if err := m.capture.End(); err != nil {
		slog.Warn("session: capture end failed", "error", err)
	}
	s := seed.FromAudio(m.rec().Samples(), now)
	m.selectAnswer(s, now, "voice")
}

// submitText derives the seed from the typed question and enters the
// thinking state.
func (m *Machine) submitText(now uint32) {
	s := seed.FromText(string(m.question), now)
	m.selectAnswer(s, now, "text")
}

func (m *Machine) selectAnswer(s uint32, now uint32, source string) {
	m.selected = seed.Select(s, m.cat.Len())
	m.round = uuid.NewString()
	m.state = StateThinking
	m.entryMS = now
	m.lastDots = -1
	slog.Info("session: question submitted",
		"round", m.round, "source", source, "seed", s, "index", m.selected)
}

func (m *Machine) enterShowingAnswer(now uint32) {
	m.state = StateShowingAnswer
	m.entryMS = now
	m.audioPlayed = false
	r := m.cat.At(m.selected)
	m.display.ShowAnswer(r)
	slog.Info("session: showing answer",
		"round", m.round, "index", m.selected, "text", r.Text, "audio", r.HasAudio())
}

func (m *Machine) enterIdle() {
	m.state = StateIdle
	m.question = m.question[:0]
	m.audioPlayed = false
	m.drainInput()
	m.display.ShowIdle()
}

// drainInput discards keys and button presses queued while no state was
// consuming them, so typing during the thinking or answer display
// cannot start a new question on return to idle.
func (m *Machine) drainInput() {
	for {
		if _, ok := m.in.PollKey(); !ok {
			break
		}
	}
	m.in.ButtonPressed()
}

// playAnswerAudio plays the response's clip synchronously, polling the
// skip button while waiting. It reports whether the user skipped.
// A missing or unreadable clip is logged and treated as if playback
// completed instantly.
func (m *Machine) playAnswerAudio(r catalog.Response) (skipped bool) {
	if !r.HasAudio() || m.clips == nil {
		return false
	}

	samples, rate, err := m.clips.LoadClip(r.WAV)
	if err != nil {
		slog.Warn("session: skipping answer audio",
			"round", m.round, "wav", r.WAV, "error", err)
		return false
	}

	if err := m.playback.Begin(); err != nil {
		slog.Warn("session: playback begin failed", "error", err)
		return false
	}
	defer func() {
		if err := m.playback.End(); err != nil {
			slog.Warn("session: playback end failed", "error", err)
		}
	}()

	m.playback.SetVolume(m.volume)
	if err := m.playback.Play(samples, rate); err != nil {
		slog.Warn("session: playback failed",
			"round", m.round, "wav", r.WAV, "error", err)
		return false
	}
	slog.Debug("session: playing answer audio",
		"round", m.round, "wav", r.WAV, "samples", len(samples), "rate", rate)

	// The output device signals completion by polling, so the wait is
	// a short-sleep-and-recheck loop that keeps servicing the skip
	// button.
	for m.playback.IsPlaying() {
		if m.in.ButtonPressed() {
			slog.Debug("session: playback skipped", "round", m.round)
			return true
		}
		m.sleep(playbackPollWait)
	}
	return false
}

// rec returns the recording buffer, allocating it on first use.
func (m *Machine) rec() *RecordBuffer {
	if m.recording == nil {
		m.recording = NewRecordBuffer(RecordChunks, ChunkSamples)
	}
	return m.recording
}
