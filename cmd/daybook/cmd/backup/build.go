package backup

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
)

var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a backup archive",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		path, man, err := a.Backup()
		if err != nil {
			return fmt.Errorf("building archive: %w", err)
		}

		fmt.Printf("%s Archive built: %s\n", color.GreenString("✓"), path)
		fmt.Printf("  files: %d, protected: %v\n", len(man.Files), man.Protected)
		fmt.Printf("  checksum: %s\n", man.Checksum)
		return nil
	},
}
