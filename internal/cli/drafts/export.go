package drafts

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportedDraft is the YAML shape of a draft, also readable by
// 'drafts new --file' after stripping the metadata keys.
type exportedDraft struct {
	ID         int64     `yaml:"id"`
	Title      string    `yaml:"title"`
	CategoryID string    `yaml:"category_id,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	Content    string    `yaml:"content"`
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export drafts as YAML",
	Long:  "Write one draft (or all drafts) as YAML, to stdout or a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		var drafts []Draft
		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid draft id %q", args[0])
			}
			d, err := getDraft(db, id)
			if err != nil {
				return err
			}
			drafts = []Draft{*d}
		} else {
			if drafts, err = listDrafts(db); err != nil {
				return fmt.Errorf("cannot list drafts: %w", err)
			}
		}

		exported := make([]exportedDraft, 0, len(drafts))
		for _, d := range drafts {
			exported = append(exported, exportedDraft{
				ID:         d.ID,
				Title:      d.Title,
				CategoryID: d.CategoryID,
				CreatedAt:  d.CreatedAt,
				Content:    d.Content,
			})
		}

		data, err := yaml.Marshal(exported)
		if err != nil {
			return fmt.Errorf("cannot render drafts: %w", err)
		}

		if exportOut == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			return fmt.Errorf("cannot write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported %d drafts to %s\n", len(exported), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to a file instead of stdout")
	DraftsCmd.AddCommand(exportCmd)
}
