package entry

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/internal/journal"
)

var (
	exportFormat string
	exportOut    string
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries to one document",
	Long: `Materializes every entry, decrypted, into a single document. The
export aborts if any entry cannot be decrypted; a partial export would be
worse than none. Stored data is never modified.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		data, err := a.Journal.Export(journal.ExportFormat(exportFormat), a.Key())
		if err != nil {
			return err
		}

		if exportOut == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o600); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Exported to %s\n", exportOut)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, markdown, text)")
	ExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}
