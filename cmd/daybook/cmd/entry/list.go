package entry

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/internal/journal"
)

var (
	listTag    string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `Lists entries in insertion order. Entries that cannot be decrypted
are shown with their metadata and an error marker instead of aborting the
whole listing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		type row struct {
			Entry journal.Entry
			Err   error
		}
		var rows []row
		for e, err := range a.Journal.List(listTag, a.Key()) {
			rows = append(rows, row{Entry: e, Err: err})
		}

		if len(rows) == 0 {
			fmt.Println("No entries found")
			return nil
		}

		switch listFormat {
		case "json":
			entries := make([]journal.Entry, 0, len(rows))
			for _, r := range rows {
				if r.Err == nil {
					entries = append(entries, r.Entry)
				}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		case "table":
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DATE\tTIME\tTYPE\tTAGS\tCONTENT\t\n")
			for _, r := range rows {
				content := truncate(r.Entry.Content, 60)
				if r.Err != nil {
					content = color.RedString("unreadable: %v", r.Err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					r.Entry.Date, r.Entry.Time, r.Entry.Type,
					joinTags(r.Entry.Tags), content)
			}
			return w.Flush()
		default:
			for _, r := range rows {
				header := fmt.Sprintf("[%s %s] %s", r.Entry.Date, r.Entry.Time, r.Entry.Type)
				if len(r.Entry.Tags) > 0 {
					header += " " + color.CyanString(joinTags(r.Entry.Tags))
				}
				fmt.Println(header)
				if r.Err != nil {
					fmt.Println(color.RedString("  unreadable: %v", r.Err))
				} else {
					fmt.Printf("  %s\n", r.Entry.Content)
				}
			}
			fmt.Printf("\nTotal: %d\n", len(rows))
			return nil
		}
	},
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += " "
		}
		out += "#" + t
	}
	return out
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVar(&listTag, "tag", "", "only entries carrying this tag")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "output format (simple, table, json)")
}
