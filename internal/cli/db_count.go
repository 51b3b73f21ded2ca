package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "count [path]",
		Short: "Count records",
		Args:  cobra.ExactArgs(1),
		Run:   runDBCount,
	}

	cmd.Flags().String("value", "", "Only count records with a matching field value")
	cmd.Flags().Bool("exact", false, "Only match exact values")

	dbCmd.AddCommand(cmd)
}

func runDBCount(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()

	count := store.Count(queryFromFlags(cmd, args[0]))
	fmt.Printf("%s: %d\n", args[0], count)
}
