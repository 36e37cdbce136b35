package snippet

import "errors"

var (
	ErrInvalidCategory = errors.New("invalid snippet category")
	ErrNotFound        = errors.New("snippet not found")
)
