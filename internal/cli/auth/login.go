package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to BlogHub",
	Long:  "Authenticate with your email and password to manage the blog",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		if email == "" {
			fmt.Print("Email: ")
			fmt.Scanln(&email)
		}

		fmt.Print("Password: ")
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()

		body := map[string]string{
			"email":    email,
			"password": string(password),
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/auth/login",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		resp, err := http.Post(serverURL, "application/json", bytes.NewReader(jsonBody))
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			if msg, ok := result["error"].(string); ok {
				return fmt.Errorf("login failed: %s", msg)
			}
			return fmt.Errorf("login failed")
		}

		data := result["data"].(map[string]interface{})
		token := data["token"].(string)
		user := data["user"].(map[string]interface{})

		// Save token to config
		home, _ := os.UserHomeDir()
		configDir := filepath.Join(home, ".bloghub")
		os.MkdirAll(configDir, 0755)

		viper.Set("user.email", email)
		viper.Set("user.id", user["id"])
		viper.Set("user.token", token)
		viper.WriteConfigAs(filepath.Join(configDir, "config.yaml"))

		fmt.Printf("Logged in as %s\n", email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Email address")
	AuthCmd.AddCommand(loginCmd)
}
