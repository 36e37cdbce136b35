package entry

import (
	"context"
	"errors"
	"iter"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"daybook/internal/journal"
	"daybook/internal/vault"
)

// Servicer is the journal surface the handler needs; *journal.Store
// implements it.
type Servicer interface {
	List(tagFilter string, key *vault.Key) iter.Seq2[journal.Entry, error]
	Append(e journal.Entry, key *vault.Key) (journal.Entry, error)
	Export(format journal.ExportFormat, key *vault.Key) ([]byte, error)
	Search(query string, key *vault.Key) ([]journal.Entry, error)
	Tags() (map[string][]string, error)
}

// KeySource hands out the current session key, nil while locked.
type KeySource interface {
	Key() *vault.Key
}

type Handler struct {
	service    Servicer
	keys       KeySource
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Servicer, keys KeySource, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		keys:       keys,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.exportOp(), h.export)
	huma.Register(api, h.searchOp(), h.search)
	huma.Register(api, h.tagsOp(), h.tags)
}

func (h *Handler) list(_ context.Context, input *listInput) (*listOutput, error) {
	var views []entryView
	for e, err := range h.service.List(input.Tag, h.keys.Key()) {
		views = append(views, viewOf(e, err))
	}

	return &listOutput{
		Body: listResponse{
			Count:   len(views),
			Entries: views,
		},
	}, nil
}

func (h *Handler) create(_ context.Context, input *createInput) (*createOutput, error) {
	e := journal.Entry{
		Type:    journal.EntryType(input.Body.Type),
		Content: input.Body.Content,
		Tags:    input.Body.Tags,
	}

	saved, err := h.service.Append(e, h.keys.Key())
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrInvalidType):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, vault.ErrLocked):
			return nil, huma.Error409Conflict("vault is locked")
		}
		return nil, err
	}

	return &createOutput{
		Body: createResponse{
			ID:     saved.ID,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) export(_ context.Context, input *exportInput) (*exportOutput, error) {
	data, err := h.service.Export(journal.ExportFormat(input.Format), h.keys.Key())
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrUnknownExportFormat):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, vault.ErrLocked), errors.Is(err, vault.ErrDecryptionFailed):
			return nil, huma.Error409Conflict(err.Error())
		}
		return nil, err
	}

	return &exportOutput{
		Body: exportResponse{
			Format: input.Format,
			Data:   string(data),
		},
	}, nil
}

func (h *Handler) search(_ context.Context, input *searchInput) (*searchOutput, error) {
	entries, err := h.service.Search(input.Query, h.keys.Key())
	if err != nil {
		return nil, err
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, viewOf(e, nil))
	}

	return &searchOutput{
		Body: listResponse{
			Count:   len(views),
			Entries: views,
		},
	}, nil
}

func (h *Handler) tags(_ context.Context, _ *struct{}) (*tagsOutput, error) {
	tags, err := h.service.Tags()
	if err != nil {
		return nil, err
	}

	return &tagsOutput{
		Body: tagsResponse{Tags: tags},
	}, nil
}
