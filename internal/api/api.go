// Package api assembles the local web API: a chi mux with every operation
// registered through huma. The API is just another client of the stores; it
// binds to localhost and carries no authentication of its own beyond the
// vault password.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"daybook/internal/app"

	backupAPI "daybook/internal/api/http/backup"
	entryAPI "daybook/internal/api/http/entry"
	healthAPI "daybook/internal/api/http/health"
	"daybook/internal/api/http/middleware/logger"
	syncAPI "daybook/internal/api/http/sync"
	vaultAPI "daybook/internal/api/http/vault"
)

// New builds the mux with all operations registered.
func New(a *app.App, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Daybook API", "1.0.0")
	API := humachi.New(mux, config)

	loggerMW := logger.New(log)
	mws := huma.Middlewares{loggerMW.Middleware()}

	healthAPI.NewHandler(log, mws).SetupRoutes(API)
	entryAPI.NewHandler(a.Journal, a, log, mws).SetupRoutes(API)
	vaultAPI.NewHandler(a, a.Cfg, log, mws).SetupRoutes(API)
	backupAPI.NewHandler(a, log, mws).SetupRoutes(API)
	syncAPI.NewHandler(a, log, mws).SetupRoutes(API)

	return mux
}
