package hostio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pocket8/eightball/pkg/catalog"
)

// Styles holds the lipgloss styles for the terminal display.
type Styles struct {
	Title  lipgloss.Style
	Text   lipgloss.Style
	Accent lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the default bright green theme.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")),
		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e6edf3")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8ff")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681")),
	}
}

const waveRamp = "▁▂▃▄▅▆▇█"

func renderIdle(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("MAGIC EIGHT BALL") + "\n\n")
	b.WriteString(st.Accent.Render("Type your question") + "\n")
	b.WriteString(st.Accent.Render("Press Enter to submit") + "\n\n")
	b.WriteString(st.Help.Render("Ctrl+G for voice, Ctrl+C to quit") + "\n")
	return b.String()
}

func renderTextInput(st Styles, question string, cursorVisible bool) string {
	cursor := " "
	if cursorVisible {
		cursor = "_"
	}
	var b strings.Builder
	b.WriteString(st.Title.Render("Your Question:") + "\n\n")
	b.WriteString(st.Accent.Render(question+cursor) + "\n\n")
	b.WriteString(st.Help.Render("Enter or Ctrl+G to submit") + "\n")
	return b.String()
}

func renderVoiceInput(st Styles, percent int, chunk []int16) string {
	const barWidth = 40
	filled := barWidth * percent / 100

	var b strings.Builder
	b.WriteString(st.Title.Render("Recording...") + "\n\n")
	b.WriteString("[" +
		st.Accent.Render(strings.Repeat("#", filled)) +
		strings.Repeat("-", barWidth-filled) +
		fmt.Sprintf("] %3d%%\n\n", percent))
	b.WriteString(st.Accent.Render(waveform(chunk, barWidth)) + "\n")
	return b.String()
}

func renderThinking(st Styles, dots int) string {
	return st.Title.Render("Thinking"+strings.Repeat(".", dots)) + "\n"
}

func renderAnswer(st Styles, r catalog.Response) string {
	header := "Answer:"
	if r.HasAudio() {
		header += " [AUDIO]"
	}
	var b strings.Builder
	b.WriteString(st.Title.Render(header) + "\n\n")
	b.WriteString(st.Text.Render(r.Text) + "\n\n")
	b.WriteString(st.Help.Render("Ctrl+G to continue") + "\n")
	return b.String()
}

// waveform downsamples a chunk into a fixed-width block-character strip.
func waveform(chunk []int16, width int) string {
	if len(chunk) == 0 {
		return strings.Repeat(string(waveRampAt(0)), width)
	}
	runes := make([]rune, width)
	per := len(chunk) / width
	if per == 0 {
		per = 1
	}
	for i := range runes {
		var peak int32
		for j := i * per; j < (i+1)*per && j < len(chunk); j++ {
			v := int32(chunk[j])
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		runes[i] = waveRampAt(int(peak * 8 / 32768))
	}
	return string(runes)
}

func waveRampAt(level int) rune {
	ramp := []rune(waveRamp)
	if level < 0 {
		level = 0
	}
	if level >= len(ramp) {
		level = len(ramp) - 1
	}
	return ramp[level]
}
