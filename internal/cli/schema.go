package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema related actions",
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}

// saveTree writes the tree to the -o/--out flag path, falling back to
// the schema path, unless --dry-run is set.
func saveTree(cmd *cobra.Command, t *schema.Tree) {
	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		return
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = getSchemaPath()
	}
	if err := t.Save(out); err != nil {
		exitErr("save schema", err)
	}
}
