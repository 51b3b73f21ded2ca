package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/xl"
)

func init() {
	cmd := &cobra.Command{
		Use:   "load [db-path] [xl-path]",
		Short: "Load a database from Excel",
		Long:  "Fill the database at db-path from a workbook. By default values must conform to the schema; --force drops non-conforming values instead.",
		Args:  cobra.ExactArgs(2),
		Run:   runDBLoad,
	}

	cmd.Flags().Bool("force", false, "Ignore values that do not conform to the schema")

	dbCmd.AddCommand(cmd)
}

func runDBLoad(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")
	tree := loadSchema()

	if err := xl.Load(args[0], args[1], tree, !force, true); err != nil {
		exitErr("load database", err)
	}
}
