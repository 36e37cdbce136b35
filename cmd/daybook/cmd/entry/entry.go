package entry

import (
	"github.com/spf13/cobra"
)

// EntryCmd is the parent for all journal operations.
var EntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Work with journal entries",
	Long:  `Add, list, search and export diary entries, notes, todos and quotes.`,
}
