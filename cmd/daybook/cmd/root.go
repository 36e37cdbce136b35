package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/internal/app"
	"daybook/internal/config"
	"daybook/internal/utils/logger"
)

var (
	log         *slog.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Daybook - a local-first private journal",
	Long: `Daybook keeps a diary, notes and code snippets on your own disk.

Entries can be protected with a password; the encryption key is derived
from it on demand and never touches the disk. Backups are single-file
archives that can be copied, restored or synced to a configured backend.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPostRun: func(*cobra.Command, []string) {
		if application != nil {
			application.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	rt := config.LoadRuntime()
	log = logger.New(rt.Env)

	var err error
	application, err = app.New(rt, log)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	cmd.SetContext(appctx.With(cmd.Context(), application))
	return nil
}
