package categories

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/categories?page=%d",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			page)

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to list categories")
		}

		data := result["data"].(map[string]interface{})
		categories, _ := data["data"].([]interface{})

		fmt.Printf("\nCategories:\n\n")
		for i, cat := range categories {
			item := cat.(map[string]interface{})
			fmt.Printf("%d. %s (%s)\n", i+1, item["title"].(string), item["slug"].(string))
			fmt.Printf("   ID: %s\n", item["id"].(string))
		}
		fmt.Println()

		return nil
	},
}

func init() {
	listCmd.Flags().Int("page", 1, "Page number")
	CategoriesCmd.AddCommand(listCmd)
}
