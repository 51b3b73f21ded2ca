package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "render [out]",
		Short: "Render an image of the schema (or part of it)",
		Long:  "Render the schema with Graphviz. A .dot or .gv output writes DOT source; other extensions need the dot binary on PATH.",
		Args:  cobra.ExactArgs(1),
		Run:   runSchemaRender,
	}

	cmd.Flags().String("path", "", "Path of a field for partial output")

	schemaCmd.AddCommand(cmd)
}

func runSchemaRender(cmd *cobra.Command, args []string) {
	tree := loadSchema()

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		sub, err := tree.Subtree(path)
		if err != nil {
			exitErr("resolve path", err)
		}
		tree = sub
	}

	if err := render.Tree(tree, args[0]); err != nil {
		exitErr("render schema", err)
	}
}
