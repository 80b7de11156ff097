package cmd

import (
	"errors"
	"fmt"

	"github.com/f3rmion/define/internal/lookup"
	"github.com/f3rmion/define/internal/mw"
	"github.com/f3rmion/define/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:     "lookup <word>...",
	Aliases: []string{"l"},
	Short:   "Look up one or more words",
	Long: `Look up words and print every matching entry: the headword with its
part of speech, followed by the numbered senses.

Words are fetched concurrently but printed in the order given. When a
word has no entry, the dictionary's spelling suggestions are shown.

Example:
  define lookup cat
  define lookup --short run walk
  define lookup --format text cat > cat.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	r, err := newRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	outcomes := svc.LookupAll(cmd.Context(), args)
	return printOutcomes(r, outcomes)
}

// printOutcomes renders outcomes in order. Missing words are reported
// inline and counted; any other failure stops the output.
func printOutcomes(r *render.Renderer, outcomes []lookup.Outcome) error {
	var missing int
	for _, o := range outcomes {
		var sugg *mw.SuggestionsError
		switch {
		case o.Err == nil:
			log.Info().Str("word", o.Word).Int("entries", len(o.Result.Entries)).Bool("cached", o.Result.Cached).Msg("found")
			if err := r.RenderEntries(o.Result.Entries); err != nil {
				return err
			}
		case errors.As(o.Err, &sugg):
			missing++
			if err := r.RenderSuggestions(o.Word, sugg.Suggestions); err != nil {
				return err
			}
		case errors.Is(o.Err, mw.ErrNotFound):
			missing++
			if err := r.RenderSuggestions(o.Word, nil); err != nil {
				return err
			}
		case errors.Is(o.Err, mw.ErrUnauthorized):
			return fmt.Errorf("%w: check api_key in %s", o.Err, configPath())
		default:
			return fmt.Errorf("looking up %q: %w", o.Word, o.Err)
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d words not found", missing, len(outcomes))
	}
	return nil
}
