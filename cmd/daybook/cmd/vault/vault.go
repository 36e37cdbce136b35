package vault

import (
	"github.com/spf13/cobra"
)

// VaultCmd is the parent for password and key operations.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage password protection",
	Long: `Enable, rotate or inspect password protection. The encryption key is
derived from the password on demand and held only in memory.`,
}
