package snippet

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/internal/snippet"
)

var (
	addLanguage string
	addCategory string
)

var AddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a snippet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		sn := snippet.Snippet{
			Language: addLanguage,
			Category: snippet.Category(addCategory),
			Text:     strings.Join(args, " "),
			Source:   snippet.SourceManual,
		}

		saved, err := a.Snippets.Append(sn, a.Key())
		if err != nil {
			return fmt.Errorf("adding snippet: %w", err)
		}

		fmt.Printf("%s Snippet %s saved\n", color.GreenString("✓"), saved.ID)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addLanguage, "language", "l", "go", "snippet language")
	AddCmd.Flags().StringVarP(&addCategory, "category", "c", string(snippet.CategoryExample), "category (example, tip, error)")
}
