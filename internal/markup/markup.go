package markup

import (
	"strings"

	"github.com/f3rmion/define/internal/style"
)

// Run is a contiguous span of text and the attributes active when it was
// emitted.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Style converts the run attributes into a running-text style.
func (r Run) Style() style.Style {
	return style.Style{
		Bold:      r.Bold,
		Italic:    r.Italic,
		Underline: r.Underline,
		Role:      style.RoleText,
	}
}

// state is the bold/italic toggle pair for one scan. It never outlives a
// single call to Scan.
type state struct {
	bold   bool
	italic bool
}

func (s state) run(text string, underline bool) Run {
	return Run{Text: text, Bold: s.bold, Italic: s.italic, Underline: underline}
}

// Scan walks text left to right and calls emit for every non-empty run.
// An unterminated token degrades to literal text and ends the scan.
func Scan(text string, emit func(Run)) {
	var st state

	out := func(r Run) {
		if r.Text != "" {
			emit(r)
		}
	}

	for text != "" {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			out(st.run(text, false))
			return
		}

		out(st.run(text[:open], false))
		text = text[open:]

		end := strings.IndexByte(text, '}')
		if end < 0 {
			out(st.run(text, false))
			return
		}

		tok := Classify(text[1:end])
		text = text[end+1:]

		switch tok.Kind {
		case ColonLabel:
			out(Run{Text: ": ", Bold: true})
		case BoldOn:
			st.bold = true
		case BoldOff:
			st.bold = false
		case ItalicOn:
			st.italic = true
		case ItalicOff:
			st.italic = false
		case Link, CrossReference:
			out(st.run(tok.Text, true))
		default:
			out(Run{Text: tok.Text})
		}
	}
}

// Render streams the runs of text to s. Style state starts cleared on
// every call.
func Render(text string, s style.Styler) {
	Scan(text, func(r Run) {
		s.Apply(r.Text, r.Style())
	})
}
