package sync

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"daybook/internal/syncer"
)

// Servicer triggers sync runs; *app.App implements it.
type Servicer interface {
	SyncNow(ctx context.Context, archivePath string) (syncer.Result, error)
}

type Handler struct {
	service    Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.triggerOp(), h.trigger)
}

func (h *Handler) trigger(ctx context.Context, input *triggerInput) (*triggerOutput, error) {
	res, err := h.service.SyncNow(ctx, input.Body.Archive)
	if err != nil {
		switch {
		case errors.Is(err, syncer.ErrBackendDisabled):
			return nil, huma.Error409Conflict(err.Error())
		case errors.Is(err, syncer.ErrUnknownBackend):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, syncer.ErrSyncFailed):
			return nil, huma.Error502BadGateway(err.Error())
		}
		return nil, err
	}

	return &triggerOutput{
		Body: triggerResponse{
			Backend:     res.Backend,
			Destination: res.Destination,
			Size:        res.Size,
			DryRun:      res.DryRun,
		},
	}, nil
}
