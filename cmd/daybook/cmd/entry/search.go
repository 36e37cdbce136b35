package entry

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
)

var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entries",
	Long: `Case-insensitive substring search over entry content and tags.
A query starting with # matches a tag exactly, e.g. "daybook entry search
'#work'".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		entries, err := a.Journal.Search(args[0], a.Key())
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No matches")
			return nil
		}

		for _, e := range entries {
			header := fmt.Sprintf("[%s %s] %s", e.Date, e.Time, e.Type)
			if len(e.Tags) > 0 {
				header += " " + color.CyanString(joinTags(e.Tags))
			}
			fmt.Println(header)
			fmt.Printf("  %s\n", e.Content)
		}
		fmt.Printf("\nMatches: %d\n", len(entries))
		return nil
	},
}
