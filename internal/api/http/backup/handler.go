package backup

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"daybook/internal/archive"
)

// Servicer builds backup archives; *app.App implements it.
type Servicer interface {
	Backup() (string, archive.Manifest, error)
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
	huma.Register(api, h.buildOp(), h.build)
}

func (h *Handler) build(_ context.Context, _ *struct{}) (*buildOutput, error) {
	path, man, err := h.service.Backup()
	if err != nil {
		return nil, err
	}

	return &buildOutput{
		Body: buildResponse{
			Path:      path,
			CreatedAt: man.CreatedAt,
			Files:     len(man.Files),
			Protected: man.Protected,
			Checksum:  man.Checksum,
		},
	}, nil
}
