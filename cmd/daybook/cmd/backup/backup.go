package backup

import (
	"github.com/spf13/cobra"
)

// BackupCmd is the parent for archive operations.
var BackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Build and restore backup archives",
	Long: `A backup is a single self-describing archive of the whole storage
tree. Restoring validates the archive completely before touching any
existing file.`,
}
