package cli

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "choices [path]",
		Short: "Show record counts for a field with choices",
		Args:  cobra.ExactArgs(1),
		Run:   runDBChoices,
	}

	cmd.Flags().String("csv", "", "Save results to a CSV file at the given path")

	dbCmd.AddCommand(cmd)
}

func runDBChoices(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()
	tree := loadSchema()

	tallies, err := validate.ChoiceCount(args[0], store, tree)
	if err != nil {
		exitErr("count choices", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Count"})
	for _, t := range tallies {
		table.Append([]string{t.Choice, strconv.Itoa(t.Count)})
	}
	table.Render()

	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		return
	}

	f, err := os.Create(csvPath)
	if err != nil {
		exitErr("create csv", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"Field", "Count"})
	for _, t := range tallies {
		w.Write([]string{t.Choice, strconv.Itoa(t.Count)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		exitErr("write csv", err)
	}
}
