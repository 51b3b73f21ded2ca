package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update [path]",
		Short: "Update existing records",
		Long:  "Set a value on every record matching the query. Without --field the matched-on path itself is overwritten. Substring matching is case-sensitive.",
		Args:  cobra.ExactArgs(1),
		Run:   runDBUpdate,
	}

	cmd.Flags().String("value", "", "Only update records with a matching field value")
	cmd.Flags().Bool("exact", false, "Only match exact values")
	cmd.Flags().String("field", "", "Update the given field instead of the matched one")
	cmd.Flags().String("set", "", "Value to write on matching records")
	cmd.MarkFlagRequired("set")

	dbCmd.AddCommand(cmd)
}

func runDBUpdate(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()

	set, _ := cmd.Flags().GetString("set")
	field, _ := cmd.Flags().GetString("field")
	q := queryFromFlags(cmd, args[0])

	n := store.UpdateRecords(q, set, field)
	if n > 0 {
		if err := store.Flush(); err != nil {
			exitErr("flush database", err)
		}
	}
	fmt.Printf("updated %d records\n", n)
}
