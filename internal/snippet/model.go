package snippet

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryExample Category = "example"
	CategoryTip     Category = "tip"
	CategoryError   Category = "error"
)

func (c Category) Validate() error {
	switch c {
	case CategoryExample, CategoryTip, CategoryError:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidCategory, c)
}

type Source string

const (
	SourceManual   Source = "manual"
	SourceImported Source = "imported"
)

// Snippet is one training/knowledge unit. Text follows the same encryption
// invariant as journal entries when private mode is on.
type Snippet struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Category  Category  `json:"category"`
	Text      string    `json:"text"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Encrypted bool      `json:"encrypted,omitempty"`
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Language string
	Category Category
	Limit    int
}
