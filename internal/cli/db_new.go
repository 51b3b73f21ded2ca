package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/db"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new [path=value ...]",
		Short: "Add a new record",
		Long:  "Add a record from path=value pairs. Every path must resolve in the schema; the database is flushed on success.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDBNew,
	}

	dbCmd.AddCommand(cmd)
}

func runDBNew(cmd *cobra.Command, args []string) {
	pairs, err := parsePairs(args)
	if err != nil {
		exitErr("parse fields", err)
	}

	tree := loadSchema()
	rec := db.Record{}
	for path, value := range pairs {
		if _, err := tree.FindByPath(path); err != nil {
			exitErr("check field", err)
		}
		rec[path] = value
	}

	store := openDB(true)
	defer store.Close()

	id := store.NewRecord(rec)
	if err := store.Flush(); err != nil {
		exitErr("flush database", err)
	}
	fmt.Println(id)
}
