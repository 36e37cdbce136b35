package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) unlockOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-unlock",
		Method:      http.MethodPost,
		Path:        "/api/vault/unlock",
		Summary:     "Unlock the vault",
		Description: "Derives the session key from the password. The key lives only in memory and is gone when the process exits.",
		Tags:        []string{"vault"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) lockOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-lock",
		Method:      http.MethodPost,
		Path:        "/api/vault/lock",
		Summary:     "Lock the vault",
		Tags:        []string{"vault"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-status",
		Method:      http.MethodGet,
		Path:        "/api/vault/status",
		Summary:     "Vault status",
		Tags:        []string{"vault"},
		Middlewares: h.middleware,
	}
}
