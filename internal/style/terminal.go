package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal renders runs with lipgloss for a fixed color profile.
//
// The profile is decided once for the real destination, so a Terminal can
// write into an in-memory buffer and still produce the escape sequences the
// destination understands.
type Terminal struct {
	w     io.Writer
	base  lipgloss.Style
	roles map[Role]lipgloss.Style
}

// NewTerminal creates a terminal styler writing to w with the given profile.
func NewTerminal(w io.Writer, profile termenv.Profile) *Terminal {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	// Runs carry dictionary text verbatim, tabs included.
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Terminal{
		w:    w,
		base: base,
		roles: map[Role]lipgloss.Style{
			RoleText:            base,
			RoleHeadword:        base.Foreground(ColorHeadword),
			RoleFunctionalLabel: base.Faint(true),
			RoleVerbDivider:     base.Foreground(ColorVerbDivider),
			RoleSenseNumber:     base.Foreground(ColorSenseNumber),
			RoleSubjectLabel:    base.Background(ColorLabelBg),
		},
	}
}

// Apply writes text styled for its role and attribute flags.
func (t *Terminal) Apply(text string, s Style) {
	if text == "" {
		return
	}

	st, ok := t.roles[s.Role]
	if !ok {
		st = t.base
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}

	io.WriteString(t.w, st.Render(text))
}

// Newline writes a line break.
func (t *Terminal) Newline() {
	io.WriteString(t.w, "\n")
}
