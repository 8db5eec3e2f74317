// Package drafts keeps unpublished posts in a local SQLite database so
// authors can write offline and publish later.
package drafts

import "github.com/spf13/cobra"

var DraftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage local post drafts",
	Long:  "Write posts locally and publish them to the server when ready",
}
