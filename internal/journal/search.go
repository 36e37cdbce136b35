package journal

import (
	"strings"

	"daybook/internal/vault"
)

// Search returns entries matching the query over decrypted content. A query
// starting with '#' matches a tag exactly; anything else is a case-
// insensitive substring match on content and tags. Entries that fail to
// decrypt are reported, not skipped.
func (s *Store) Search(query string, key *vault.Key) ([]Entry, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var matches []Entry
	for e, err := range s.List("", key) {
		if err != nil {
			return nil, err
		}
		if matchEntry(e, q) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func matchEntry(e Entry, q string) bool {
	if tag, ok := strings.CutPrefix(q, "#"); ok {
		for _, t := range e.Tags {
			if strings.ToLower(t) == tag {
				return true
			}
		}
		return false
	}
	if strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
