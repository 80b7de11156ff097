package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/define/internal/mw"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <file.json|->",
	Short: "Render a saved API response",
	Long: `Render a Merriam-Webster Collegiate response that was saved to disk,
or read one from stdin with '-'. No API key or network access is needed.

Example:
  curl -s "https://dictionaryapi.com/api/v3/references/collegiate/json/cat?key=$KEY" > cat.json
  define render cat.json
  define render - < cat.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	name := args[0]

	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	r, err := newRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	word := "stdin"
	if name != "-" {
		word = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	res, err := mw.Decode(word, data)
	var sugg *mw.SuggestionsError
	switch {
	case err == nil:
		return r.RenderJSON(res.Body)
	case errors.As(err, &sugg):
		return r.RenderSuggestions(word, sugg.Suggestions)
	case errors.Is(err, mw.ErrNotFound):
		return r.RenderSuggestions(word, nil)
	default:
		return fmt.Errorf("rendering %s: %w", name, err)
	}
}
