package drafts

import (
	"fmt"

	"github.com/spf13/cobra"

	"bloghub/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List local drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		drafts, err := listDrafts(db)
		if err != nil {
			return fmt.Errorf("cannot list drafts: %w", err)
		}

		if len(drafts) == 0 {
			fmt.Println("No drafts. Create one with 'blogctl drafts new'.")
			return nil
		}

		fmt.Printf("\n%d drafts:\n\n", len(drafts))
		for _, d := range drafts {
			fmt.Printf("%d. %s\n", d.ID, d.Title)
			if d.CategoryID != "" {
				fmt.Printf("   Category: %s\n", d.CategoryID)
			}
			fmt.Printf("   Created: %s, %d characters\n\n", utils.TimeAgo(d.CreatedAt), len(d.Content))
		}

		return nil
	},
}

func init() {
	DraftsCmd.AddCommand(listCmd)
}
