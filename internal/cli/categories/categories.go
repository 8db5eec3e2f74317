package categories

import "github.com/spf13/cobra"

var CategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse categories",
	Long:  "List blog categories",
}
