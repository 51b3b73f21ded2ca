package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dataonlygreater/taxonopy/internal/validate"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check database records against the schema",
		Long:  "Report every field path present in a record that does not exist in the schema. Values are not checked.",
		Args:  cobra.NoArgs,
		Run:   runDBValidate,
	}

	dbCmd.AddCommand(cmd)
}

func runDBValidate(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()
	tree := loadSchema()

	result := validate.NonMatchingNodes(store, tree)
	if len(result) == 0 {
		fmt.Println("Database valid")
		return
	}

	out, err := yaml.Marshal(result)
	if err != nil {
		exitErr("format report", err)
	}
	fmt.Println("\n*** Non-schema fields detected ***")
	fmt.Println()
	fmt.Print(string(out))
}
