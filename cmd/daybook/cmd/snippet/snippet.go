package snippet

import (
	"github.com/spf13/cobra"
)

// SnippetCmd is the parent for snippet operations.
var SnippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Work with code snippets",
	Long:  `Store, list and import language snippets: examples, tips and common errors.`,
}
