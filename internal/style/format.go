package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how output is styled.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the destination.
	FormatAuto Format = iota
	// FormatTerminal renders colors and text attributes.
	FormatTerminal
	// FormatText renders plain text.
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal", "color":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat determines the output format from the environment and the
// terminal capabilities of output.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// NewFactory resolves f against the destination out and returns a Factory
// for stylers that write what out can display.
func NewFactory(out io.Writer, f Format) Factory {
	if f == FormatAuto {
		f = FormatText
		if file, ok := out.(*os.File); ok {
			f = DetectFormat(file)
		}
	}

	if f == FormatText {
		return func(w io.Writer) Styler { return NewPlain(w) }
	}

	profile := termenv.ColorProfile()
	if profile == termenv.Ascii {
		// Forced color on a destination that reports no color support.
		profile = termenv.ANSI256
	}
	return func(w io.Writer) Styler { return NewTerminal(w, profile) }
}
