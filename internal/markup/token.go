// Package markup interprets the inline control tokens embedded in
// dictionary running text, such as {b}, {it}, {bc}, {a_link|...} and
// {sx|...}, and turns them into styled runs.
package markup

import "strings"

// Kind identifies a token variant.
type Kind int

const (
	Literal        Kind = iota // Unrecognized token, emitted verbatim
	ColonLabel                 // {bc}: a bold ": "
	BoldOn                     // {b}
	BoldOff                    // {/b}
	ItalicOn                   // {it}
	ItalicOff                  // {/it}
	Link                       // {a_link|text}
	CrossReference             // {sx|text|...}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case ColonLabel:
		return "colon-label"
	case BoldOn:
		return "bold-on"
	case BoldOff:
		return "bold-off"
	case ItalicOn:
		return "italic-on"
	case ItalicOff:
		return "italic-off"
	case Link:
		return "link"
	case CrossReference:
		return "cross-reference"
	default:
		return "unknown"
	}
}

// Token is one parsed {...} control sequence.
type Token struct {
	Kind Kind
	// Text is the display text for Link and CrossReference (already
	// upper-cased for the latter) and the raw body for Literal.
	Text string
}

const (
	linkPrefix     = "a_link|"
	crossRefPrefix = "sx|"
)

// Classify parses a token body, the characters between { and }.
// Exact names are tried before prefixes; the first match wins.
func Classify(body string) Token {
	switch body {
	case "bc":
		return Token{Kind: ColonLabel}
	case "b":
		return Token{Kind: BoldOn}
	case "/b", `\/b`:
		return Token{Kind: BoldOff}
	case "it":
		return Token{Kind: ItalicOn}
	case "/it", `\/it`:
		return Token{Kind: ItalicOff}
	}

	switch {
	case strings.HasPrefix(body, linkPrefix):
		return Token{Kind: Link, Text: field(body)}
	case strings.HasPrefix(body, crossRefPrefix):
		return Token{Kind: CrossReference, Text: strings.ToUpper(field(body))}
	}

	return Token{Kind: Literal, Text: body}
}

// field returns the first |-separated field after the token name:
// "sx|cat||" yields "cat".
func field(body string) string {
	_, rest, _ := strings.Cut(body, "|")
	text, _, _ := strings.Cut(rest, "|")
	return text
}
