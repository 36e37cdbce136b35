package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
)

var UnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Check that the password opens the vault",
	Long: `Derives the key from the password and verifies it against the stored
key material. A wrong password fails immediately, before any entry is
touched. The key is not persisted; commands that read entries ask again.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		password, err := prompt.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		if err := a.Unlock(password); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓"), "Password accepted")
		return nil
	},
}
