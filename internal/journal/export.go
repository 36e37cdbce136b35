package journal

import (
	"encoding/json"
	"fmt"
	"strings"

	"daybook/internal/vault"
)

type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

// Export materializes all entries into a single flat document with content
// decrypted. Stored data is not mutated. A decrypt failure aborts the export;
// an export with silently missing entries would be worse than none.
func (s *Store) Export(format ExportFormat, key *vault.Key) ([]byte, error) {
	var entries []Entry
	for e, err := range s.List("", key) {
		if err != nil {
			return nil, fmt.Errorf("exporting: %w", err)
		}
		entries = append(entries, e)
	}

	switch format {
	case ExportJSON:
		return json.MarshalIndent(entries, "", "  ")
	case ExportMarkdown:
		return exportMarkdown(entries), nil
	case ExportText:
		return exportText(entries), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExportFormat, format)
	}
}

func exportMarkdown(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString("# Journal\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s %s (%s)\n\n", e.Date, e.Time, e.Type)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(e.Tags, ", "))
		}
		b.WriteString(e.Content)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func exportText(entries []Entry) []byte {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s] %s", e.timestamp(), e.Type)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, " #%s", strings.Join(e.Tags, " #"))
		}
		b.WriteString("\n")
		b.WriteString(e.Content)
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}
