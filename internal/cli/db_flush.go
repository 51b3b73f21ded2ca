package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Force a database file update",
		Long:  "Open the database and commit it to disk, creating an empty database file if none exists.",
		Args:  cobra.NoArgs,
		Run:   runDBFlush,
	}

	dbCmd.AddCommand(cmd)
}

func runDBFlush(cmd *cobra.Command, args []string) {
	store := openDB(false)
	defer store.Close()

	if err := store.Flush(); err != nil {
		exitErr("flush database", err)
	}
}
