// Package style defines the text styling capability used by the renderer,
// along with terminal, plain-text and recording implementations.
package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Role tells a Styler what kind of element a run belongs to.
// Stylers map roles to colors; the attribute flags on Style stay authoritative.
type Role int

const (
	RoleText            Role = iota // Running text from a definition body
	RoleHeadword                    // Entry headword
	RoleFunctionalLabel             // Part of speech
	RoleVerbDivider                 // "transitive verb" and friends
	RoleSenseNumber                 // "1", "(2)", "a"
	RoleSubjectLabel                // Subject/status labels such as "law"
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleText:
		return "text"
	case RoleHeadword:
		return "headword"
	case RoleFunctionalLabel:
		return "functional-label"
	case RoleVerbDivider:
		return "verb-divider"
	case RoleSenseNumber:
		return "sense-number"
	case RoleSubjectLabel:
		return "subject-label"
	default:
		return "unknown"
	}
}

// Style is the set of attributes a run is emitted with.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Role      Role
}

// Styler receives styled runs and line breaks in document order.
type Styler interface {
	Apply(text string, s Style)
	Newline()
}

// Factory builds a Styler that writes to w.
type Factory func(w io.Writer) Styler

// Palette colors, one per role.
var (
	ColorHeadword    = lipgloss.Color("2")  // Green
	ColorVerbDivider = lipgloss.Color("12") // Bright blue
	ColorSenseNumber = lipgloss.Color("3")  // Yellow
	ColorLabelBg     = lipgloss.Color("8")  // Bright black
)

// Plain writes text without any escape sequences.
type Plain struct {
	w io.Writer
}

// NewPlain creates a plain-text styler.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

// Apply writes text as-is.
func (p *Plain) Apply(text string, _ Style) {
	io.WriteString(p.w, text)
}

// Newline writes a line break.
func (p *Plain) Newline() {
	io.WriteString(p.w, "\n")
}
