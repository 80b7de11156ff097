package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/define/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize define configuration",
	Long: `Write a configuration file with the default settings.

Get a free Collegiate Dictionary key at https://dictionaryapi.com and
pass it with --api-key, or add it to the file afterwards.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := configPath()

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	out := config.Default()
	out.APIKey = cfg.APIKey

	if err := config.Save(path, out); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created %s\n\n", path)
	fmt.Fprintln(w, "Next steps:")
	if out.APIKey == "" {
		fmt.Fprintln(w, "  1. Add your API key as api_key (or export DEFINE_API_KEY)")
	} else {
		fmt.Fprintln(w, "  1. Your API key has been saved")
	}
	fmt.Fprintln(w, "  2. Run 'define <word>' to look up a word")

	return nil
}
