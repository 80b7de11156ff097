// Package tui provides an interactive terminal UI for looking up words.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/define/internal/clipboard"
	"github.com/f3rmion/define/internal/lookup"
	"github.com/f3rmion/define/internal/mw"
	"github.com/f3rmion/define/internal/render"
	"github.com/f3rmion/define/internal/style"
	"github.com/mattn/go-runewidth"
)

// Lines taken by everything except the viewport: header, input, divider,
// status bar and help.
const chromeHeight = 5

// Looker resolves a word to entries.
type Looker interface {
	Lookup(ctx context.Context, word string) (lookup.Result, error)
}

type focus int

const (
	focusInput focus = iota
	focusViewport
)

// Lookup messages
type lookupResultMsg struct {
	word   string
	result lookup.Result
	err    error
}

// Clipboard messages
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Model is the Bubble Tea model for the lookup TUI.
type Model struct {
	ctx    context.Context
	looker Looker

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	focus    focus

	newStyler style.Factory
	short     bool
	copier    func(string) error

	word     string // word of the last request
	rendered string // styled rendering of the current result
	plain    string // unstyled rendering of the current result
	cached   bool
	loading  bool
	err      error
	copied   bool

	width  int
	height int
	ready  bool
}

// Option configures a Model.
type Option func(*Model)

// WithShort shows short definitions instead of full sense trees.
func WithShort(short bool) Option {
	return func(m *Model) {
		m.short = short
	}
}

// WithStyler sets how entries are styled in the viewport.
func WithStyler(f style.Factory) Option {
	return func(m *Model) {
		m.newStyler = f
	}
}

// WithCopier replaces the clipboard writer.
func WithCopier(copier func(string) error) Option {
	return func(m *Model) {
		m.copier = copier
	}
}

// WithWord pre-fills the input.
func WithWord(word string) Option {
	return func(m *Model) {
		m.input.SetValue(word)
	}
}

// New creates a new TUI model. ctx bounds every lookup it starts.
func New(ctx context.Context, looker Looker, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a word..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = InputPromptStyle
	ti.TextStyle = InputTextStyle

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(LoadingStyle),
	)

	m := Model{
		ctx:     ctx,
		looker:  looker,
		input:   ti,
		spinner: sp,
		newStyler: func(w io.Writer) style.Styler {
			return style.NewTerminal(w, lipgloss.ColorProfile())
		},
		copier: clipboard.Write,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.toggleFocus(), nil
		case "enter":
			if m.focus == focusInput {
				return m.submit()
			}
		case "y":
			if m.focus == focusViewport {
				return m.copyResult()
			}
		}

	case lookupResultMsg:
		if msg.word != m.word {
			// A newer lookup superseded this one.
			return m, nil
		}
		m.loading = false
		m.setResult(msg.result, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.SetContent(m.content())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusViewport
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

// submit starts a lookup for the current input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	word := strings.TrimSpace(m.input.Value())
	if word == "" {
		return m, nil
	}

	m.word = word
	m.loading = true
	m.err = nil
	m.copied = false
	return m, tea.Batch(m.spinner.Tick, m.lookupCmd(word))
}

// lookupCmd creates a command that resolves word in the background.
func (m Model) lookupCmd(word string) tea.Cmd {
	ctx, looker := m.ctx, m.looker
	return func() tea.Msg {
		res, err := looker.Lookup(ctx, word)
		return lookupResultMsg{word: word, result: res, err: err}
	}
}

// setResult renders a finished lookup into the viewport.
func (m *Model) setResult(res lookup.Result, err error) {
	m.cached = res.Cached

	var (
		styled bytes.Buffer
		plain  bytes.Buffer
	)
	r := render.New(&styled, m.newStyler, render.WithShort(m.short))
	p := render.New(&plain, func(w io.Writer) style.Styler { return style.NewPlain(w) }, render.WithShort(m.short))

	var sugg *mw.SuggestionsError
	switch {
	case err == nil:
		r.RenderEntries(res.Entries)
		p.RenderEntries(res.Entries)
	case errors.As(err, &sugg):
		r.RenderSuggestions(m.word, sugg.Suggestions)
		p.RenderSuggestions(m.word, sugg.Suggestions)
	case errors.Is(err, mw.ErrNotFound):
		r.RenderSuggestions(m.word, nil)
		p.RenderSuggestions(m.word, nil)
	default:
		m.err = err
	}

	m.rendered = styled.String()
	m.plain = plain.String()
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

// copyResult copies the plain rendering of the current result.
func (m Model) copyResult() (tea.Model, tea.Cmd) {
	if m.plain == "" {
		return m, nil
	}
	if err := m.copier(m.plain); err != nil {
		m.err = fmt.Errorf("copy: %w", err)
		return m, nil
	}
	m.copied = true
	return m, clearCopiedAfter(2 * time.Second)
}

func (m Model) content() string {
	if m.word == "" {
		return HelpStyle.Render("Type a word and press Enter")
	}
	return m.rendered
}

// statusText is the status bar text, truncated to fit the window.
func (m Model) statusText() string {
	var s string
	switch {
	case m.loading:
		s = fmt.Sprintf("Looking up %s...", m.word)
	case m.word != "":
		s = m.word
		if m.cached {
			s += " (cached)"
		}
	default:
		s = "Merriam-Webster Collegiate Dictionary"
	}

	if m.width > 0 {
		s = runewidth.Truncate(s, max(m.width-2, 1), "…")
	}
	return s
}

func (m Model) helpText() string {
	parts := []string{"enter: look up"}
	if m.focus == focusInput {
		parts = append(parts, "tab: scroll")
	} else {
		parts = append(parts, "tab: type", "↑/↓: scroll")
		if m.plain != "" {
			parts = append(parts, "y: copy")
		}
	}
	parts = append(parts, "esc: quit")
	return strings.Join(parts, " • ")
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder

	// Header
	b.WriteString(TitleStyle.Render("define") + "  " + SubtitleStyle.Render("Merriam-Webster Collegiate"))
	b.WriteString("\n")

	// Input
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(DividerStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")

	// Entries
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Status
	status := m.statusText()
	switch {
	case m.loading:
		status = m.spinner.View() + " " + status
	case m.err != nil:
		status = ErrorStyle.Render(runewidth.Truncate("Error: "+m.err.Error(), max(m.width-2, 1), "…"))
	case m.copied:
		status += "  " + CopiedStyle.Render("Copied!")
	}
	b.WriteString(StatusStyle.Render(status))
	b.WriteString("\n")

	// Help
	b.WriteString(HelpStyle.Render(m.helpText()))

	return b.String()
}
