package render

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/define/internal/dict"
	"github.com/f3rmion/define/internal/markup"
	"github.com/f3rmion/define/internal/style"
)

var (
	plain         = style.Style{}
	headwordStyle = style.Style{Bold: true, Role: style.RoleHeadword}
	labelStyle    = style.Style{Role: style.RoleFunctionalLabel}
	dividerStyle  = style.Style{Italic: true, Role: style.RoleVerbDivider}
	senseNumStyle = style.Style{Bold: true, Role: style.RoleSenseNumber}
	subjectStyle  = style.Style{Role: style.RoleSubjectLabel}
)

// Entry writes one entry: the headword line, every definition, and a
// blank separator line.
func Entry(s style.Styler, e dict.Entry) {
	headline(s, e)
	for _, d := range e.Definitions {
		Definition(s, d)
	}
	s.Newline()
}

// Short writes one entry using its short definitions instead of the full
// sense tree.
func Short(s style.Styler, e dict.Entry) {
	headline(s, e)
	for i, def := range e.ShortDefs {
		s.Apply(strconv.Itoa(i+1), senseNumStyle)
		s.Apply(" ", plain)
		s.Apply(def, plain)
		s.Newline()
	}
	s.Newline()
}

func headline(s style.Styler, e dict.Entry) {
	s.Apply(e.Headword, headwordStyle)
	s.Apply(" ", plain)
	s.Apply(e.FunctionalLabel, labelStyle)
	s.Newline()
}

// Definition writes the verb divider line, if any, followed by the senses.
func Definition(s style.Styler, d dict.Definition) {
	// An empty divider prints no line.
	if d.VerbDivider != "" {
		s.Apply(d.VerbDivider, dividerStyle)
		s.Newline()
	}
	Tree(s, d.Senses)
}

// Tree walks a sense sequence depth-first in document order.
func Tree(s style.Styler, t dict.Tree) {
	switch t := t.(type) {
	case dict.Sequence:
		for _, child := range t {
			Tree(s, child)
		}
	case dict.SenseNode:
		Sense(s, t.Sense)
	case dict.BaseSense:
		Sense(s, t.Sense)
	}
}

// Sense writes the sense number, subject labels and every text element of
// the body, one line per text element.
func Sense(s style.Styler, sense dict.Sense) {
	// An empty number is treated as absent: no indent, no trailing space.
	if sense.Number != "" {
		s.Apply(strings.Repeat(" ", Indent(sense.Number)), plain)
		s.Apply(sense.Number, senseNumStyle)
		s.Apply(" ", plain)
	}

	if sense.SubjectLabels != nil {
		s.Apply(strings.Join(sense.SubjectLabels, ","), subjectStyle)
		s.Apply(" ", plain)
	}

	for _, el := range sense.Body {
		if text, ok := el.(dict.Text); ok {
			markup.Render(string(text), s)
			s.Newline()
		}
	}
}

// Indent returns the indentation width for a sense number: 4 for
// parenthesized numbers, 2 for letters and 0 otherwise.
func Indent(number string) int {
	r, _ := utf8.DecodeRuneInString(number)
	switch {
	case number == "":
		return 0
	case r == '(':
		return 4
	case unicode.IsLetter(r):
		return 2
	default:
		return 0
	}
}
