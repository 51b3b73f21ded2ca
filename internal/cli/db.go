package cli

import "github.com/spf13/cobra"

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database related actions",
}

func init() {
	RootCmd.AddCommand(dbCmd)
}
