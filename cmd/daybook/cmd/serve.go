package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local web API",
	Long: `Starts the HTTP API on the configured listen address (DAYBOOK_LISTEN,
default localhost:8340). The API is a local front end for the same stores
the CLI uses; it is not meant to be exposed beyond the machine.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              a.Runtime.ListenAddr,
			Handler:           api.New(a, a.Log),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.Log.Info("API listening", "addr", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case sig := <-sigCh:
			a.Log.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		}
	},
}
