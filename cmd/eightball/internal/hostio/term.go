package hostio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/pocket8/eightball/pkg/catalog"
	"github.com/pocket8/eightball/pkg/session"
)

// Control bytes read from the raw-mode terminal.
const (
	keyCtrlC     = 0x03
	keyCtrlG     = 0x07
	keyBackspace = 0x08
	keyEnter     = 0x0d
	keyNewline   = 0x0a
	keyDelete    = 0x7f
)

// Terminal implements session.InputPort and session.Display on a raw
// mode terminal. A reader goroutine pumps stdin into event channels;
// the machine polls them from its own tick loop, so all session state
// stays single-threaded. Ctrl+G acts as the appliance's primary
// button and Ctrl+C requests shutdown.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
	styles   Styles
	start    time.Time

	keys   chan session.KeyEvent
	button chan struct{}
	quit   chan struct{}
}

// OpenTerminal puts stdin into raw mode and starts the input pump.
// Close must be called to restore the terminal.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{
		in:     os.Stdin,
		out:    os.Stdout,
		styles: DefaultStyles(),
		start:  time.Now(),
		keys:   make(chan session.KeyEvent, 64),
		button: make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}

	old, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("hostio: raw mode: %w", err)
	}
	t.oldState = old

	go t.readLoop()
	return t, nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	fmt.Fprint(t.out, "\x1b[2J\x1b[H")
	return term.Restore(int(t.in.Fd()), t.oldState)
}

// Quit returns a channel closed when the user requests shutdown.
func (t *Terminal) Quit() <-chan struct{} { return t.quit }

func (t *Terminal) readLoop() {
	var buf [1]byte
	for {
		n, err := t.in.Read(buf[:])
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		switch b := buf[0]; b {
		case keyCtrlC:
			close(t.quit)
			return
		case keyCtrlG:
			select {
			case t.button <- struct{}{}:
			default:
			}
		case keyEnter, keyNewline:
			t.push(session.KeyEvent{Enter: true})
		case keyBackspace, keyDelete:
			t.push(session.KeyEvent{Backspace: true})
		default:
			ev := session.KeyEvent{Rune: b}
			if ev.Printable() {
				t.push(ev)
			}
		}
	}
}

func (t *Terminal) push(ev session.KeyEvent) {
	select {
	case t.keys <- ev:
	default:
		// Queue full; drop rather than block the pump.
	}
}

// PollKey returns the next pending key event, if any.
func (t *Terminal) PollKey() (session.KeyEvent, bool) {
	select {
	case ev := <-t.keys:
		return ev, true
	default:
		return session.KeyEvent{}, false
	}
}

// ButtonPressed reports a primary-button press edge since the last call.
func (t *Terminal) ButtonPressed() bool {
	select {
	case <-t.button:
		return true
	default:
		return false
	}
}

// NowMillis returns monotonic milliseconds since the terminal opened.
func (t *Terminal) NowMillis() uint32 {
	return uint32(time.Since(t.start).Milliseconds())
}

// paint clears the screen and draws the frame.
func (t *Terminal) paint(frame string) {
	// Raw mode needs explicit carriage returns.
	frame = strings.ReplaceAll(frame, "\n", "\r\n")
	fmt.Fprint(t.out, "\x1b[2J\x1b[H"+frame)
}

// ShowIdle renders the idle prompt.
func (t *Terminal) ShowIdle() {
	t.paint(renderIdle(t.styles))
}

// ShowTextInput renders the question being typed.
func (t *Terminal) ShowTextInput(question string, cursorVisible bool) {
	t.paint(renderTextInput(t.styles, question, cursorVisible))
}

// ShowVoiceInput renders recording progress and a live waveform.
func (t *Terminal) ShowVoiceInput(percent int, chunk []int16) {
	t.paint(renderVoiceInput(t.styles, percent, chunk))
}

// ShowThinking renders the thinking animation.
func (t *Terminal) ShowThinking(dots int) {
	t.paint(renderThinking(t.styles, dots))
}

// ShowAnswer renders the selected answer.
func (t *Terminal) ShowAnswer(r catalog.Response) {
	t.paint(renderAnswer(t.styles, r))
}
