package entry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-list",
		Method:      http.MethodGet,
		Path:        "/api/entries",
		Summary:     "List journal entries",
		Description: "Lists entries, newest last. Entries that cannot be decrypted are reported individually instead of failing the listing.",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-create",
		Method:      http.MethodPost,
		Path:        "/api/entries",
		Summary:     "Create a journal entry",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-export",
		Method:      http.MethodGet,
		Path:        "/api/entries/export",
		Summary:     "Export all entries",
		Description: "Materializes every entry into one document. Aborts if any entry cannot be decrypted.",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-search",
		Method:      http.MethodGet,
		Path:        "/api/entries/search",
		Summary:     "Search entries",
		Description: "Case-insensitive substring match, or exact tag match with a #tag query.",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) tagsOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-tags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}
