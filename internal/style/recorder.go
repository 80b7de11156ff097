package style

import "strings"

// Span is one recorded Apply or Newline call.
type Span struct {
	Text  string
	Style Style
	Break bool
}

// Recorder keeps every call it receives. It backs tests and plain-text
// exports where the styling has to be inspected rather than printed.
type Recorder struct {
	Spans []Span
}

// Apply records a styled run.
func (r *Recorder) Apply(text string, s Style) {
	r.Spans = append(r.Spans, Span{Text: text, Style: s})
}

// Newline records a line break.
func (r *Recorder) Newline() {
	r.Spans = append(r.Spans, Span{Text: "\n", Break: true})
}

// Text returns the recorded output without styling.
func (r *Recorder) Text() string {
	var sb strings.Builder
	for _, s := range r.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Lines returns the recorded output split into lines, without the final
// empty element a trailing break would produce.
func (r *Recorder) Lines() []string {
	text := r.Text()
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Styled returns the non-empty runs whose style matches pred.
func (r *Recorder) Styled(pred func(Style) bool) []string {
	var out []string
	for _, s := range r.Spans {
		if !s.Break && s.Text != "" && pred(s.Style) {
			out = append(out, s.Text)
		}
	}
	return out
}
