package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/db"
	"github.com/dataonlygreater/taxonopy/internal/validate"
	"github.com/dataonlygreater/taxonopy/internal/xl"
)

func init() {
	cmd := &cobra.Command{
		Use:   "equal [db-one] [db-two]",
		Short: "Test equality of two database files",
		Long:  "Compare the record sets of two databases (JSON or Excel) regardless of record ordering or identifier numbering.",
		Args:  cobra.ExactArgs(2),
		Run:   runDBEqual,
	}

	cmd.Flags().Bool("strict", false, "Values loaded from Excel must conform to the schema")

	dbCmd.AddCommand(cmd)
}

func runDBEqual(cmd *cobra.Command, args []string) {
	strict, _ := cmd.Flags().GetBool("strict")

	one, err := equalRecords(args[0], strict)
	if err != nil {
		exitErr("load first database", err)
	}
	two, err := equalRecords(args[1], strict)
	if err != nil {
		exitErr("load second database", err)
	}

	missing := validate.NonMatchingRecords(one, two)
	if len(missing) == 0 {
		fmt.Println("Databases are equal")
		return
	}
	fmt.Printf("Differences detected in records:\n%s\n", strings.Join(missing, "\n"))
}

// equalRecords materializes the records of a JSON database, converting
// Excel inputs through a temporary store first.
func equalRecords(path string, strict bool) (map[string]db.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		store, err := db.Open(path, true)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.ToRecords(), nil
	}

	tmpDir, err := os.MkdirTemp("", "taxonopy-equal-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tmpPath := filepath.Join(tmpDir, name+".json")

	if err := xl.Load(tmpPath, path, loadSchema(), strict, true); err != nil {
		return nil, err
	}

	store, err := db.Open(tmpPath, true)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ToRecords(), nil
}
