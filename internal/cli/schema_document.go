package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/docgen"
	"github.com/dataonlygreater/taxonopy/internal/osutil"
)

func init() {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Format the schema as pandoc markdown (with pandoc-crossref anchors)",
		Args:  cobra.NoArgs,
		Run:   runSchemaDocument,
	}

	cmd.Flags().StringP("out", "o", "", "Output to the given file path (default is stdout)")
	cmd.Flags().String("title", "Schema Glossary", "Title of the markdown document")
	cmd.Flags().Int("width", 120, "Maximum width of the markdown document")
	cmd.Flags().String("date-format", "2 January 2006", "Date format using Go reference-time layout")

	schemaCmd.AddCommand(cmd)
}

func runSchemaDocument(cmd *cobra.Command, args []string) {
	tree := loadSchema()

	title, _ := cmd.Flags().GetString("title")
	width, _ := cmd.Flags().GetInt("width")
	dateFormat, _ := cmd.Flags().GetString("date-format")

	doc := docgen.Document(tree, docgen.Options{
		Title:      title,
		Width:      width,
		DateFormat: dateFormat,
	})

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		fmt.Print(doc)
		return
	}
	if err := osutil.WriteFileAtomic(out, []byte(doc), 0o644); err != nil {
		exitErr("write document", err)
	}
}
