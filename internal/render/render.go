// Package render turns dictionary entries into styled output.
//
// The walk itself (Entry, Definition, Tree, Sense) writes straight into a
// style.Styler and cannot fail. Renderer adds buffering on top: each entry
// is rendered into memory first and reaches the destination in a single
// write, so entries never interleave with other output.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/define/internal/dict"
	"github.com/f3rmion/define/internal/style"
	"github.com/tidwall/gjson"
)

// Renderer writes entries to a destination.
type Renderer struct {
	w         io.Writer
	newStyler style.Factory
	short     bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithShort renders the short definitions of an entry instead of its
// full sense tree.
func WithShort(short bool) Option {
	return func(r *Renderer) {
		r.short = short
	}
}

// New creates a Renderer writing to w through stylers built by newStyler.
func New(w io.Writer, newStyler style.Factory, opts ...Option) *Renderer {
	r := &Renderer{
		w:         w,
		newStyler: newStyler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderEntry renders one generic entry value. Values without a headword
// produce no output. The only error is a failed write to the destination.
func (r *Renderer) RenderEntry(v gjson.Result) error {
	e, ok := dict.ParseEntry(v)
	if !ok {
		return nil
	}

	var buf bytes.Buffer
	s := r.newStyler(&buf)
	if r.short && len(e.ShortDefs) > 0 {
		Short(s, e)
	} else {
		Entry(s, e)
	}

	if _, err := r.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing entry %q: %w", e.Headword, err)
	}
	return nil
}

// RenderEntries renders values in order.
func (r *Renderer) RenderEntries(values []gjson.Result) error {
	for _, v := range values {
		if err := r.RenderEntry(v); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON renders every entry of a raw response body.
func (r *Renderer) RenderJSON(data []byte) error {
	return r.RenderEntries(dict.Values(data))
}

// RenderSuggestions writes the alternatives offered for a word that has no
// entry.
func (r *Renderer) RenderSuggestions(word string, suggestions []string) error {
	var buf bytes.Buffer
	s := r.newStyler(&buf)

	s.Apply("No entry for ", plain)
	s.Apply(word, headwordStyle)
	s.Newline()
	if len(suggestions) > 0 {
		s.Apply("Did you mean: ", labelStyle)
		s.Apply(strings.Join(suggestions, ", "), plain)
		s.Newline()
	}
	s.Newline()

	if _, err := r.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing suggestions for %q: %w", word, err)
	}
	return nil
}
