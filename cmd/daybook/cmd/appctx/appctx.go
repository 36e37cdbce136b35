// Package appctx carries the application object through the cobra command
// tree via the command context.
package appctx

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"daybook/internal/app"
)

type ctxKey struct{}

func With(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func From(cmd *cobra.Command) (*app.App, error) {
	a, ok := cmd.Context().Value(ctxKey{}).(*app.App)
	if !ok || a == nil {
		return nil, errors.New("application is not initialized")
	}
	return a, nil
}
