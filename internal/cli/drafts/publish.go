package drafts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var publishCmd = &cobra.Command{
	Use:   "publish <draft-id>",
	Short: "Publish a draft to the server",
	Long:  "Publish a local draft as a post. Requires an admin login.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid draft id %q", args[0])
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in, run 'blogctl auth login' first")
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		draft, err := getDraft(db, id)
		if err != nil {
			return err
		}

		categoryID, _ := cmd.Flags().GetString("category")
		if categoryID == "" {
			categoryID = draft.CategoryID
		}
		if categoryID == "" {
			return fmt.Errorf("draft has no category, pass --category")
		}

		body := map[string]string{
			"title":       draft.Title,
			"content":     draft.Content,
			"category_id": categoryID,
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/posts",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, err := http.NewRequest(http.MethodPost, serverURL, bytes.NewReader(jsonBody))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("publish failed: %s", msg)
			}
			return fmt.Errorf("publish failed (status %d)", resp.StatusCode)
		}

		post := result["data"].(map[string]interface{})
		fmt.Printf("✓ Published as post %s\n", post["id"])

		if err := deleteDraft(db, id); err != nil {
			fmt.Printf("warning: published but could not remove local draft: %v\n", err)
		}

		return nil
	},
}

func init() {
	publishCmd.Flags().String("category", "", "Category ID, overrides the draft's category")
	DraftsCmd.AddCommand(publishCmd)
}
