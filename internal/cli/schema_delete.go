package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "delete [path]",
		Short: "Delete a field from the schema",
		Long:  "Detach the field at the given path together with its subtree.",
		Args:  cobra.ExactArgs(1),
		Run:   runSchemaDelete,
	}

	cmd.Flags().StringP("out", "o", "", "Output path for the schema (default is to overwrite)")
	cmd.Flags().Bool("dry-run", false, "Show the new schema without saving")

	schemaCmd.AddCommand(cmd)
}

func runSchemaDelete(cmd *cobra.Command, args []string) {
	tree := loadSchema()
	if err := tree.DeleteNode(args[0]); err != nil {
		exitErr("delete field", err)
	}

	fmt.Println(tree)
	saveTree(cmd, tree)
}
