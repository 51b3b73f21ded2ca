package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [name] [parent]",
		Short: "Add (or replace) a field in the schema",
		Long:  "Add a field under the parent path. An existing field with the same name is detached, together with its subtree, and replaced.",
		Args:  cobra.ExactArgs(2),
		Run:   runSchemaAdd,
	}

	cmd.Flags().StringArrayP("attributes", "a", nil, "Field attributes as key=value pairs (repeatable; values are always strings)")
	cmd.Flags().StringP("out", "o", "", "Output path for the schema (default is to overwrite)")
	cmd.Flags().Bool("dry-run", false, "Show the new schema without saving")

	schemaCmd.AddCommand(cmd)
}

func runSchemaAdd(cmd *cobra.Command, args []string) {
	pairs, _ := cmd.Flags().GetStringArray("attributes")
	attrs, err := parsePairs(pairs)
	if err != nil {
		exitErr("parse attributes", err)
	}

	tree := loadSchema()
	if _, err := tree.UpsertNode(args[0], args[1], attrs); err != nil {
		exitErr("add field", err)
	}

	fmt.Println(tree)
	saveTree(cmd, tree)
}
