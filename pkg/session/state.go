package session

// State represents the state of the session machine.
type State int

const (
	// StateIdle shows the prompt and waits for input.
	StateIdle State = iota
	// StateTextInput accumulates a typed question.
	StateTextInput
	// StateVoiceInput records a fixed-length voice question.
	StateVoiceInput
	// StateThinking shows the thinking animation.
	StateThinking
	// StateShowingAnswer presents the selected answer.
	StateShowingAnswer
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTextInput:
		return "text_input"
	case StateVoiceInput:
		return "voice_input"
	case StateThinking:
		return "thinking"
	case StateShowingAnswer:
		return "showing_answer"
	default:
		return "unknown"
	}
}
