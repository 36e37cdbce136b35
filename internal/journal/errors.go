package journal

import "errors"

var (
	ErrInvalidType         = errors.New("invalid entry type")
	ErrNotFound            = errors.New("entry not found")
	ErrIndexCorrupt        = errors.New("journal index is corrupt")
	ErrUnknownExportFormat = errors.New("unknown export format")
)
