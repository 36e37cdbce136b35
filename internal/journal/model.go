package journal

import (
	"fmt"
	"time"
)

type EntryType string

const (
	TypeDiary EntryType = "diary"
	TypeNotes EntryType = "notes"
	TypeTodo  EntryType = "todo"
	TypeQuote EntryType = "quote"
)

func (t EntryType) Validate() error {
	switch t {
	case TypeDiary, TypeNotes, TypeTodo, TypeQuote:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidType, t)
}

// Entry is one journaling unit. ID, Date and Time are assigned at creation
// and immutable afterwards. When Encrypted is set, Content holds a base64
// codec blob and the plaintext exists only transiently in memory after a
// successful decrypt.
type Entry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Tags      []string  `json:"tags,omitempty"`
	Content   string    `json:"content"`
	Encrypted bool      `json:"encrypted,omitempty"`
}

func (e Entry) timestamp() string {
	return e.Date + " " + e.Time
}

func stampNow(now time.Time) (date, clock string) {
	return now.Format("2006-01-02"), now.Format("15:04:05")
}
