package cli

import (
	"fmt"
	"local-notes/app"
	"local-notes/config"
	"local-notes/config/setup"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// env carries what the root command resolved for its subcommands
type env struct {
	verbose bool
	dbPath  string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the local-notes command tree
func NewRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "local-notes",
		Short: "Local note taking backed by an embedded SQLite store",
		Long: `local-notes keeps titled notes in a single SQLite file.
Run "serve" for the HTTP API, or use the other commands to work with the store directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if e.dbPath != "" {
				cfg.DBPath = e.dbPath
			}
			if e.verbose {
				cfg.LogLevel = "debug"
			}

			e.cfg = cfg
			e.logger = cfg.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(e.logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&e.dbPath, "db", "", "Database file (overrides DB_PATH)")

	rootCmd.AddCommand(
		newServeCmd(e),
		newListCmd(e),
		newGetCmd(e),
		newSearchCmd(e),
		newCountCmd(e),
		newDeleteCmd(e),
		newClearCmd(e),
		newExportCmd(e),
		newImportCmd(e),
	)

	return rootCmd
}

// Execute runs the command tree against os.Args. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withApp opens the store for the duration of fn
func (e *env) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	store, err := setup.InitStore(cmd.Context(), e.cfg, e.logger)
	if err != nil {
		return fmt.Errorf("opening %s: %w", e.cfg.DBPath, err)
	}

	application := setup.InitApp(store, e.cfg, e.logger)
	defer func() {
		application.Editor.Close()
		if err := store.Close(); err != nil {
			e.logger.Error("failed to close database", "error", err)
		}
	}()

	return fn(application)
}
