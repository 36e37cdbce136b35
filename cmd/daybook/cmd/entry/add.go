package entry

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/cmd/daybook/cmd/appctx"
	"daybook/cmd/daybook/cmd/prompt"
	"daybook/internal/journal"
)

var (
	addType string
	addTags []string
)

var AddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a journal entry",
	Long: `Stores a new entry. The text is taken from the arguments; with
password protection on you will be asked to unlock first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appctx.From(cmd)
		if err != nil {
			return err
		}
		if err := prompt.EnsureKey(a); err != nil {
			return err
		}

		e := journal.Entry{
			Type:    journal.EntryType(addType),
			Content: strings.Join(args, " "),
			Tags:    addTags,
		}

		saved, err := a.Journal.Append(e, a.Key())
		if err != nil {
			return fmt.Errorf("adding entry: %w", err)
		}

		marker := color.GreenString("✓")
		if saved.Encrypted {
			fmt.Printf("%s Entry %s saved (encrypted)\n", marker, saved.ID)
		} else {
			fmt.Printf("%s Entry %s saved\n", marker, saved.ID)
		}
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addType, "type", "t", string(journal.TypeDiary), "entry type (diary, notes, todo, quote)")
	AddCmd.Flags().StringSliceVar(&addTags, "tags", nil, "tags for lookup")
}
