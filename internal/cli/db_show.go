package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show full records",
		Args:  cobra.ExactArgs(1),
		Run:   runDBShow,
	}

	cmd.Flags().String("value", "", "Only show records with a matching field value")
	cmd.Flags().Bool("exact", false, "Only match exact values")

	dbCmd.AddCommand(cmd)
}

func runDBShow(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()

	view := store.Search(queryFromFlags(cmd, args[0]))
	records := view.ToRecords()
	for _, id := range view.IDs() {
		b, _ := json.MarshalIndent(records[id], "", "  ")
		fmt.Printf("%s %s\n", id, string(b))
	}
}
