// Package cli implements the highlights-reader command line.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/config"
	"github.com/mrlokans/highlights-reader/internal/entrypoint"
	"github.com/mrlokans/highlights-reader/internal/logging"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	dbPath  string
	lang    string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the HTTP server.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "highlights-reader",
		Short:         "Import and browse e-reader highlights",
		Long:          "Import Kindle clippings and JSON highlight exports into a local database and serve them over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return entrypoint.Run(opts.cfg, opts.logger, version)
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file (overrides DATABASE_PATH)")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "language for user-facing messages (pt-BR, en, es)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(opts, version),
		newImportCommand(opts),
		newBooksCommand(opts),
		newExportCommand(opts),
		newVersionCommand(version),
	)

	return root
}

// load reads .env, the environment and the global flags, in that order of
// increasing precedence.
func (o *globalOptions) load() error {
	_ = godotenv.Load()

	o.cfg = config.NewConfig()
	if o.dbPath != "" {
		o.cfg.Database.Path = o.dbPath
	}
	if o.verbose {
		o.cfg.Log.Level = "debug"
	}

	logger, err := logging.New(o.cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	o.logger = logger
	return nil
}

func newServeCommand(opts *globalOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return entrypoint.Run(opts.cfg, opts.logger, version)
		},
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "highlights-reader %s\n", version)
		},
	}
}
