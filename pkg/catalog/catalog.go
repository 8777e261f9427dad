// Package catalog owns the appliance's ordered list of pre-authored
// answers. The catalog is loaded once at startup from a JSON document
// and is read-only afterwards; every answer has a text body and may
// reference a WAV clip and a bitmap by storage path.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrParse indicates a malformed catalog document or a document
	// whose root is not a list.
	ErrParse = errors.New("catalog: malformed document")

	// ErrEmpty indicates a well-formed document with zero usable
	// entries after validation.
	ErrEmpty = errors.New("catalog: no usable entries")
)

// Response is a single pre-authored answer. Its identity is its
// position in the catalog's ordered sequence.
type Response struct {
	// Text is the answer text. Never empty for a loaded response.
	Text string `json:"text"`

	// WAV is the storage path of an optional audio clip.
	WAV string `json:"wav,omitempty"`

	// Bitmap is the storage path of an optional image.
	Bitmap string `json:"bitmap,omitempty"`
}

// HasAudio reports whether the response references an audio clip.
func (r Response) HasAudio() bool { return r.WAV != "" }

// HasBitmap reports whether the response references an image.
func (r Response) HasBitmap() bool { return r.Bitmap != "" }

// Catalog is an immutable ordered sequence of responses.
type Catalog struct {
	responses []Response
}

// New creates a catalog from the given responses.
func New(responses []Response) *Catalog {
	return &Catalog{responses: responses}
}

// Len returns the number of responses.
func (c *Catalog) Len() int { return len(c.responses) }

// At returns the response at index i.
func (c *Catalog) At(i int) Response { return c.responses[i] }

// Responses returns a copy of the response list.
func (c *Catalog) Responses() []Response {
	out := make([]Response, len(c.responses))
	copy(out, c.responses)
	return out
}

// Parse loads a catalog from a JSON document whose root is an ordered
// list of objects with a required "text" field and optional "wav" and
// "bitmap" fields. Entries with missing or empty text are skipped and
// logged rather than failing the whole load, so the result may be
// empty; the caller decides whether an empty catalog is acceptable.
func Parse(data []byte) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	responses := make([]Response, 0, len(raw))
	for i, msg := range raw {
		var r Response
		if err := json.Unmarshal(msg, &r); err != nil {
			slog.Warn("catalog: skipping invalid entry", "index", i, "error", err)
			continue
		}
		if r.Text == "" {
			slog.Warn("catalog: skipping entry with empty text", "index", i)
			continue
		}
		responses = append(responses, r)
	}
	return New(responses), nil
}

// MarshalJSON encodes the catalog in its storage format.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.responses)
}

// Default returns the fixed 30-entry catalog: the 20 classic Magic
// 8-Ball answers plus 10 custom ones, all text-only. The output is the
// same on every call.
func Default() *Catalog {
	return New([]Response{
		// Classic affirmative answers.
		{Text: "It is certain"},
		{Text: "It is decidedly so"},
		{Text: "Without a doubt"},
		{Text: "Yes definitely"},
		{Text: "You may rely on it"},
		{Text: "As I see it yes"},
		{Text: "Most likely"},
		{Text: "Outlook good"},
		{Text: "Yes"},
		{Text: "Signs point to yes"},
		// Classic non-committal answers.
		{Text: "Reply hazy try again"},
		{Text: "Ask again later"},
		{Text: "Better not tell you now"},
		{Text: "Cannot predict now"},
		{Text: "Concentrate and ask again"},
		// Classic negative answers.
		{Text: "Don't count on it"},
		{Text: "My reply is no"},
		{Text: "My sources say no"},
		{Text: "Outlook not so good"},
		{Text: "Very doubtful"},
		// Custom answers.
		{Text: "The circuits say yes"},
		{Text: "My ESP32 brain says no"},
		{Text: "Error 404: Answer not found"},
		{Text: "Buffering... yes!"},
		{Text: "Have you tried turning it off and on again?"},
		{Text: "The SD card has spoken: absolutely"},
		{Text: "My microphone heard a yes in your voice"},
		{Text: "The waveform suggests otherwise"},
		{Text: "Quantum uncertainty says maybe"},
		{Text: "Stack overflow: ask a simpler question"},
	})
}
