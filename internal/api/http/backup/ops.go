package backup

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) buildOp() huma.Operation {
	return huma.Operation{
		OperationID: "backup-build",
		Method:      http.MethodPost,
		Path:        "/api/backup",
		Summary:     "Build a backup archive",
		Description: "Packages the storage tree into a timestamped archive in the backups directory.",
		Tags:        []string{"backup"},
		Middlewares: h.middleware,
	}
}
