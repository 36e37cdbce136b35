package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show protection status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		onOff := func(v bool) string {
			if v {
				return "on"
			}
			return "off"
		}

		fmt.Printf("Password protection: %s\n", onOff(a.Cfg.Security.PasswordEnabled))
		fmt.Printf("Encryption:          %s\n", onOff(a.Cfg.EncryptionActive()))
		if hint := a.Cfg.Security.PasswordHint; hint != "" {
			fmt.Printf("Hint:                %s\n", hint)
		}

		count, err := a.Journal.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Journal entries:     %d\n", count)

		snippets, err := a.Snippets.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Snippets:            %d\n", snippets)
		return nil
	},
}
