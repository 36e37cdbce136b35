package vault

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
)

var passwdHint string

var PasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set or rotate the password",
	Long: `Enables password protection, or rotates the password when it is
already on. Rotation re-generates the salt, so the old password stops
working immediately. Entries written before the change keep the key they
were encrypted with; keep a backup before rotating.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		if a.Cfg.Security.PasswordEnabled {
			current, err := prompt.ReadPassword("Current password: ")
			if err != nil {
				return err
			}
			if !a.Store.VerifyPassword(a.Cfg, current) {
				return fmt.Errorf("wrong password")
			}
		}

		password, err := prompt.ReadNewPassword()
		if err != nil {
			return err
		}
		if err := a.SetPassword(password, passwdHint); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓"), "Password updated")
		return nil
	},
}

func init() {
	PasswdCmd.Flags().StringVar(&passwdHint, "hint", "", "optional password hint, stored in plain text")
}
