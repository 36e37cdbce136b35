package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) triggerOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-trigger",
		Method:      http.MethodPost,
		Path:        "/api/sync",
		Summary:     "Sync a backup archive",
		Description: "Delivers an archive to the configured backend. With dry_run set in the config this only reports what would happen.",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}
