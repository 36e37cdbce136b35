package snippet

import (
	"encoding/json"
	"fmt"
	"io"

	"daybook/internal/vault"
)

type importRecord struct {
	Language string   `json:"language"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Import reads a JSON array of snippets and appends them with the imported
// source marker. Returns the number of snippets stored; it stops at the
// first invalid record rather than importing half a file silently.
func (s *Store) Import(r io.Reader, key *vault.Key) (int, error) {
	var records []importRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decoding import file: %w", err)
	}

	for i, rec := range records {
		sn := Snippet{
			Language: rec.Language,
			Category: rec.Category,
			Text:     rec.Text,
			Source:   SourceImported,
		}
		if _, err := s.Append(sn, key); err != nil {
			return i, fmt.Errorf("importing record %d: %w", i, err)
		}
	}
	return len(records), nil
}
