package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/define/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive [word]",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for looking up words.

Controls:
  Enter   Look up the word in the input
  Tab     Switch between the input and the entry view
  ↑/↓     Scroll entries
  y       Copy the entries as plain text
  Esc     Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	styler, err := stylerFactory(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	m := tui.New(cmd.Context(), svc,
		tui.WithShort(cfg.Output.Short),
		tui.WithStyler(styler),
		tui.WithWord(strings.Join(args, " ")),
	)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
