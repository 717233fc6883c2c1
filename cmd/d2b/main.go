// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the d2b CLI, which resolves DOIs,
// arXiv IDs and ADS bibcodes (and, through a subcommand, ISBNs) to
// normalized BibTeX entries.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/doi2bibtex/internal/config"
	"github.com/pdiddy/doi2bibtex/internal/observability"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Per-run state built in setup.
var (
	loadedConfig types.Config
	configPath   string
	logger       = zerolog.Nop()
	metrics      *observability.Metrics
)

// rootCmd resolves a single identifier.
var rootCmd = &cobra.Command{
	Use:   "d2b [IDENTIFIER]",
	Short: "Resolve DOIs and arXiv IDs to BibTeX",
	Long: `d2b resolves a DOI, arXiv ID or ADS bibcode to a normalized BibTeX entry.

The entry is fetched from Crossref, arxiv2bibtex.org or the ADS API, then
cleaned up: LaTeX in authors and titles becomes Unicode, journal names are
abbreviated, a citekey is generated, authors are formatted as
"{Last}, First" and unwanted fields are dropped. Every step can be switched
off in ~/.doi2bibtex/config.yaml.

Resolution failures are printed in place of the entry and do not change the
exit code.`,
	Args:               cobra.MaximumNArgs(1),
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	RunE:               runResolve,
	PersistentPostRunE: writeMetrics,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.Flags().Bool("plain", false, "print the entry as plain text, for piping to other programs")
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.doi2bibtex/config.yaml or $XDG_CONFIG_HOME/doi2bibtex/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: trace, debug, info, warn, error or off")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
}

// setup loads .env, the logger, the configuration and the metrics
// registry before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	level, _ := cmd.Flags().GetString("log-level")
	logCfg := observability.DefaultLoggingConfig()
	logCfg.Level = level
	logCfg.Writer = cmd.ErrOrStderr()
	logger = observability.NewLogger(logCfg)

	path, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(config.Options{Path: path, Logger: logger})
	if err != nil {
		return err
	}
	if cfg.UserAgent == types.DefaultConfig().UserAgent {
		cfg.UserAgent = "d2b/" + version
	}
	loadedConfig, configPath = cfg, used

	metrics = observability.NewMetrics()
	return nil
}

func writeMetrics(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("metrics-file")
	if path == "" || metrics == nil {
		return nil
	}
	if err := metrics.WriteFile(path); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("provide an identifier (DOI, arXiv ID or ADS bibcode)")
	}
	plain, _ := cmd.Flags().GetBool("plain")

	router, err := buildRouter()
	if err != nil {
		return err
	}
	entry := router.Resolve(cmd.Context(), args[0])
	printEntry(cmd.OutOrStdout(), args[0], entry, plain, loadedConfig.PygmentsTheme)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
