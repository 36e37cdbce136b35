package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/backup"
	"daybook/cmd/daybook/cmd/entry"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/cmd/daybook/cmd/snippet"
	"daybook/cmd/daybook/cmd/sync"
	"daybook/cmd/daybook/cmd/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up the storage directory",
	Long: `Creates the storage tree, writes the default configuration and
optionally protects the journal with a password.

Without a password entries are stored as plain text. A password can be
added later with "daybook vault passwd".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		if _, err := os.Stat(a.Store.Path()); err == nil {
			fmt.Println("Already initialized.")
			return nil
		}

		if err := a.Store.Save(a.Cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Storage initialized at %s\n", a.Cfg.Paths.Root)

		if prompt.Confirm("Protect the journal with a password?") {
			password, err := prompt.ReadNewPassword()
			if err != nil {
				return err
			}
			if err := a.SetPassword(password, ""); err != nil {
				return err
			}
			fmt.Println(color.GreenString("✓"), "Password protection enabled")
		} else {
			fmt.Println("Entries will be stored unencrypted. Run \"daybook vault passwd\" to change that.")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(entry.EntryCmd)
	entry.EntryCmd.AddCommand(entry.AddCmd)
	entry.EntryCmd.AddCommand(entry.ListCmd)
	entry.EntryCmd.AddCommand(entry.ExportCmd)
	entry.EntryCmd.AddCommand(entry.SearchCmd)

	rootCmd.AddCommand(snippet.SnippetCmd)
	snippet.SnippetCmd.AddCommand(snippet.AddCmd)
	snippet.SnippetCmd.AddCommand(snippet.ListCmd)
	snippet.SnippetCmd.AddCommand(snippet.ImportCmd)

	rootCmd.AddCommand(vault.VaultCmd)
	vault.VaultCmd.AddCommand(vault.PasswdCmd)
	vault.VaultCmd.AddCommand(vault.UnlockCmd)
	vault.VaultCmd.AddCommand(vault.StatusCmd)

	rootCmd.AddCommand(backup.BackupCmd)
	backup.BackupCmd.AddCommand(backup.BuildCmd)
	backup.BackupCmd.AddCommand(backup.RestoreCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
