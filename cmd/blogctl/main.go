package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bloghub/internal/cli/auth"
	"bloghub/internal/cli/categories"
	"bloghub/internal/cli/config"
	"bloghub/internal/cli/drafts"
	"bloghub/internal/cli/posts"
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "BlogHub command line client",
	Long:  "Browse posts, manage drafts, and administer a BlogHub server",
}

func initConfig() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	viper.SetConfigFile(filepath.Join(home, ".bloghub", "config.yaml"))
	viper.SetConfigType("yaml")

	// Missing config just means nobody logged in yet
	_ = viper.ReadInConfig()
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(posts.PostsCmd)
	rootCmd.AddCommand(categories.CategoriesCmd)
	rootCmd.AddCommand(drafts.DraftsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
