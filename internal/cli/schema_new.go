package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/schema"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create the root field of a new schema",
		Long:  "Create a new schema with a single root field. Replaces any existing schema file.",
		Args:  cobra.ExactArgs(1),
		Run:   runSchemaNew,
	}

	cmd.Flags().StringArrayP("attributes", "a", nil, "Field attributes as key=value pairs (repeatable; values are always strings; pre-added: type=str required=True)")
	cmd.Flags().Bool("force", false, "Overwrite an existing schema file")
	cmd.Flags().Bool("dry-run", false, "Show the new schema without saving")

	schemaCmd.AddCommand(cmd)
}

func runSchemaNew(cmd *cobra.Command, args []string) {
	pairs, _ := cmd.Flags().GetStringArray("attributes")
	attrs, err := parsePairs(pairs)
	if err != nil {
		exitErr("parse attributes", err)
	}

	dry, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	if !dry && !force {
		if _, err := os.Stat(getSchemaPath()); err == nil {
			exitErr("new schema", fmt.Errorf("a schema already exists at %s (use --force to overwrite)", getSchemaPath()))
		}
	}

	tree := schema.New()
	if _, err := tree.AddNode(args[0], "", attrs); err != nil {
		exitErr("add root", err)
	}

	fmt.Println(tree)

	if dry {
		return
	}
	if err := tree.Save(getSchemaPath()); err != nil {
		exitErr("save schema", err)
	}
}
