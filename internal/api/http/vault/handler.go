package vault

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"daybook/internal/app"
	"daybook/internal/config"
	vaultcore "daybook/internal/vault"
)

// Servicer is the vault surface the handler needs; *app.App implements it.
type Servicer interface {
	Unlock(password string) error
	LockVault()
	Locked() bool
}

type Handler struct {
	service    Servicer
	cfg        *config.Config
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Servicer, cfg *config.Config, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		cfg:        cfg,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.unlockOp(), h.unlock)
	huma.Register(api, h.lockOp(), h.lock)
	huma.Register(api, h.statusOp(), h.status)
}

func (h *Handler) unlock(_ context.Context, input *unlockInput) (*actionOutput, error) {
	if err := h.service.Unlock(input.Body.Password); err != nil {
		switch {
		case errors.Is(err, vaultcore.ErrWrongPassword):
			return nil, huma.Error401Unauthorized("wrong password")
		case errors.Is(err, app.ErrPasswordDisabled):
			return nil, huma.Error409Conflict(err.Error())
		}
		return nil, err
	}

	return &actionOutput{Body: actionResponse{Status: "Ok"}}, nil
}

func (h *Handler) lock(_ context.Context, _ *struct{}) (*actionOutput, error) {
	h.service.LockVault()
	return &actionOutput{Body: actionResponse{Status: "Ok"}}, nil
}

func (h *Handler) status(_ context.Context, _ *struct{}) (*statusOutput, error) {
	return &statusOutput{
		Body: statusResponse{
			Locked:            h.service.Locked(),
			PasswordEnabled:   h.cfg.Security.PasswordEnabled,
			EncryptionEnabled: h.cfg.Security.EncryptionEnabled,
			Hint:              h.cfg.Security.PasswordHint,
		},
	}, nil
}
