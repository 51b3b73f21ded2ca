package cli

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/db"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a field for all records",
		Long:  "Print one row per record with the values at the given paths. Defaults to the schema root field.",
		Args:  cobra.NoArgs,
		Run:   runDBList,
	}

	cmd.Flags().StringArray("path", nil, "Path of a field to display (repeatable; default is the root)")

	dbCmd.AddCommand(cmd)
}

func runDBList(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()

	paths, _ := cmd.Flags().GetStringArray("path")
	if len(paths) == 0 {
		tree := loadSchema()
		paths = []string{tree.Root().Name()}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append([]string{"ID"}, paths...))

	records := store.ToRecords()
	for _, id := range store.IDs() {
		row := []string{id}
		for _, p := range paths {
			row = append(row, db.Stringify(records[id][p]))
		}
		table.Append(row)
	}
	table.Render()
}
