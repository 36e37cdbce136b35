package backup

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
)

var restoreYes bool

var RestoreCmd = &cobra.Command{
	Use:   "restore <archive.zip>",
	Short: "Restore the storage tree from an archive",
	Long: `Validates the archive (format version, completeness, checksum) and
only then replaces the storage tree. A failed validation leaves existing
data untouched. Restoring overwrites current entries; last write wins.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}

		man, err := a.Restorer.Inspect(args[0])
		if err != nil {
			return fmt.Errorf("inspecting archive: %w", err)
		}
		fmt.Printf("Archive from %s: %d files, protected: %v\n",
			man.CreatedAt.Format("2006-01-02 15:04"), len(man.Files), man.Protected)

		if !restoreYes && !prompt.Confirm("Overwrite current data with this archive?") {
			fmt.Println("Aborted")
			return nil
		}

		if _, err := a.Restore(args[0]); err != nil {
			return fmt.Errorf("restoring: %w", err)
		}

		fmt.Println(color.GreenString("✓"), "Restore complete")
		return nil
	},
}

func init() {
	RestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}
