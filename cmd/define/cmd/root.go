// Package cmd contains all CLI commands for define.
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/define/internal/cache"
	"github.com/f3rmion/define/internal/config"
	"github.com/f3rmion/define/internal/logging"
	"github.com/f3rmion/define/internal/lookup"
	"github.com/f3rmion/define/internal/mw"
	"github.com/f3rmion/define/internal/render"
	"github.com/f3rmion/define/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	verbosity int
	logFile   string

	// cfg is loaded before any command runs.
	cfg       *config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "define [word...]",
	Short: "Look up words in the Merriam-Webster Collegiate Dictionary",
	Long: `define prints Merriam-Webster Collegiate Dictionary entries in the
terminal: headwords, parts of speech, verb dividers and the numbered
sense tree with its inline formatting.

Responses are cached locally, so repeated lookups work offline.

Running 'define <word>' is the same as 'define lookup <word>'.
Running 'define' without arguments prints this help.

Example:
  define cat
  define --short run walk
  define interactive`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runLookup(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeLog)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/define/config.yaml)")
	flags.CountVarP(&verbosity, "verbose", "v", "verbose output (repeat for more)")
	flags.StringVar(&logFile, "log-file", logging.DefaultPath(), "log file (empty to disable)")
	flags.String("api-key", "", "Merriam-Webster API key")
	flags.String("format", "", "output format: auto, term or text")
	flags.Bool("short", false, "print short definitions only")
	flags.Bool("no-cache", false, "bypass the response cache")
	flags.MarkHidden("log-file")

	viper.BindPFlag("api_key", flags.Lookup("api-key"))
	viper.BindPFlag("output.format", flags.Lookup("format"))
	viper.BindPFlag("output.short", flags.Lookup("short"))
	viper.BindPFlag("no_cache", flags.Lookup("no-cache"))
}

// initConfig reads ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("DEFINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setup configures logging and loads the config file, then applies flag
// and environment overrides on top.
func setup(cmd *cobra.Command, args []string) error {
	logCloser = logging.Setup(verbosity, cmd.ErrOrStderr(), logFile)

	path := configPath()
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	applyOverrides(loaded)

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	cfg = loaded
	log.Debug().Str("config", path).Str("command", cmd.Name()).Msg("configuration loaded")
	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// configPath returns the config file path.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// applyOverrides copies values set by flag or environment into c.
func applyOverrides(c *config.Config) {
	if viper.IsSet("api_key") {
		c.APIKey = viper.GetString("api_key")
	}
	if viper.IsSet("base_url") {
		c.BaseURL = viper.GetString("base_url")
	}
	if viper.IsSet("timeout") {
		c.Timeout = viper.GetDuration("timeout")
	}
	if viper.IsSet("cache.enabled") {
		c.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.path") {
		c.Cache.Path = viper.GetString("cache.path")
	}
	if viper.IsSet("cache.ttl") {
		c.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("output.format") {
		c.Output.Format = viper.GetString("output.format")
	}
	if viper.IsSet("output.short") {
		c.Output.Short = viper.GetBool("output.short")
	}
	if viper.GetBool("no_cache") {
		c.Cache.Enabled = false
	}
}

// newService wires the API client and, when enabled, the response cache.
// The returned function releases the cache.
func newService() (*lookup.Service, func(), error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, nil, err
	}

	client := mw.NewClient(cfg.APIKey,
		mw.WithBaseURL(cfg.BaseURL),
		mw.WithTimeout(cfg.Timeout),
		mw.WithLogger(logging.GetLogger("mw")),
	)

	opts := []lookup.Option{lookup.WithLogger(logging.GetLogger("lookup"))}
	cleanup := func() {}

	if cfg.Cache.Enabled {
		c, err := openCache()
		if err != nil {
			// Lookups still work without the cache.
			log.Warn().Err(err).Msg("cache unavailable")
		} else {
			opts = append(opts, lookup.WithStore(c))
			cleanup = func() { c.Close() }
		}
	}

	return lookup.NewService(client, opts...), cleanup, nil
}

// stylerFactory resolves the configured output format against out.
func stylerFactory(out io.Writer) (style.Factory, error) {
	format, err := style.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return style.NewFactory(out, format), nil
}

// newRenderer creates a renderer for out using the configured format.
func newRenderer(out io.Writer) (*render.Renderer, error) {
	f, err := stylerFactory(out)
	if err != nil {
		return nil, err
	}
	return render.New(out, f, render.WithShort(cfg.Output.Short)), nil
}

// openCache opens the configured cache regardless of cache.enabled.
func openCache() (*cache.Cache, error) {
	c, err := cache.Open(cfg.Cache.Path,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithLogger(logging.GetLogger("cache")),
	)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", cfg.Cache.Path, err)
	}
	return c, nil
}
