package snippet

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/internal/snippet"
)

var (
	listLanguage string
	listCategory string
	listLimit    int
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snippets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		snippets, err := a.Snippets.List(snippet.Filter{
			Language: listLanguage,
			Category: snippet.Category(listCategory),
			Limit:    listLimit,
		}, a.Key())
		if err != nil {
			return err
		}

		if len(snippets) == 0 {
			fmt.Println("No snippets found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "LANGUAGE\tCATEGORY\tSOURCE\tTEXT\t\n")
		for _, sn := range snippets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", sn.Language, sn.Category, sn.Source, truncate(sn.Text, 70))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nTotal: %d\n", len(snippets))
		return nil
	},
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listLanguage, "language", "l", "", "filter by language")
	ListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	ListCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of snippets (0 for all)")
}
