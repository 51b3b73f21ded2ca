package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/xl"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Dump the database to Excel",
		Args:  cobra.ExactArgs(1),
		Run:   runDBDump,
	}

	dbCmd.AddCommand(cmd)
}

func runDBDump(cmd *cobra.Command, args []string) {
	store := openDB(true)
	defer store.Close()
	tree := loadSchema()

	if err := xl.Dump(args[0], tree, store); err != nil {
		if errors.Is(err, os.ErrPermission) {
			exitErr("dump database", errors.New("can not write to open file"))
		}
		exitErr("dump database", err)
	}
}
