package snippet

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
)

var ImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import snippets from a JSON file",
	Long: `Reads a JSON array of {language, category, text} objects and stores
each record. The import stops at the first invalid record and reports how
many were stored before it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()

		count, err := a.Snippets.Import(f, a.Key())
		if err != nil {
			return fmt.Errorf("imported %d snippets, then: %w", count, err)
		}

		fmt.Printf("%s Imported %d snippets\n", color.GreenString("✓"), count)
		return nil
	},
}
