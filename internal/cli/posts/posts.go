package posts

import "github.com/spf13/cobra"

var PostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse blog posts",
	Long:  "List and inspect published posts",
}
