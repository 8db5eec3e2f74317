package posts

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bloghub/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts",
	Long:  "List posts, newest first, optionally filtered by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		categoryID, _ := cmd.Flags().GetString("category")

		params := url.Values{}
		params.Set("page", fmt.Sprintf("%d", page))
		if categoryID != "" {
			params.Set("category_id", categoryID)
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/posts?%s",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			params.Encode())

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to list posts")
		}

		data := result["data"].(map[string]interface{})
		posts, _ := data["data"].([]interface{})
		meta, _ := data["meta"].(map[string]interface{})

		total := int(meta["total"].(float64))
		totalPages := int(meta["total_pages"].(float64))

		fmt.Printf("\n%d posts (page %d of %d):\n\n", total, page, totalPages)

		for i, p := range posts {
			item := p.(map[string]interface{})
			fmt.Printf("%d. %s\n", i+1, item["title"].(string))
			if category, ok := item["category_title"].(string); ok && category != "" {
				fmt.Printf("   Category: %s\n", category)
			}
			if updated, ok := item["updated_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339, updated); err == nil {
					fmt.Printf("   Updated: %s\n", utils.TimeAgo(t))
				}
			}
			fmt.Printf("   ID: %s\n\n", item["id"].(string))
		}

		return nil
	},
}

func init() {
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().String("category", "", "Filter by category ID")
	PostsCmd.AddCommand(listCmd)
}
