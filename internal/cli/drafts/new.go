package drafts

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new draft",
	Long:  "Save a new draft locally. Content comes from --file or stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		categoryID, _ := cmd.Flags().GetString("category")
		file, _ := cmd.Flags().GetString("file")

		if title == "" {
			return fmt.Errorf("--title is required")
		}

		var content []byte
		var err error
		if file != "" {
			content, err = os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", file, err)
			}
		} else {
			fmt.Println("Enter content, end with Ctrl+D:")
			content, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("cannot read stdin: %w", err)
			}
		}

		if len(content) == 0 {
			return fmt.Errorf("draft content is empty")
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := insertDraft(db, title, string(content), categoryID)
		if err != nil {
			return fmt.Errorf("cannot save draft: %w", err)
		}

		fmt.Printf("✓ Draft %d saved\n", id)
		return nil
	},
}

func init() {
	newCmd.Flags().String("title", "", "Draft title")
	newCmd.Flags().String("category", "", "Category ID for publishing")
	newCmd.Flags().String("file", "", "Read content from file")
	DraftsCmd.AddCommand(newCmd)
}
