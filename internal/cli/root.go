// Package cli implements the taxonopy CLI commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dataonlygreater/taxonopy/internal/db"
	"github.com/dataonlygreater/taxonopy/internal/schema"
)

var (
	schemaPath string
	dbPath     string
)

// version is stamped at build time via -ldflags.
var version = "0.1.0-dev"

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:     "taxonopy",
	Short:   "Hierarchical field schemas and record databases",
	Long:    "Maintain a tree of named, typed, path-addressable fields and a JSON database of records conforming to it.",
	Version: version,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to the schema (default: $TAXONOPY_SCHEMA or ./schema.json)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database (default: $TAXONOPY_DB or ./db.json)")
}

func getSchemaPath() string {
	if schemaPath != "" {
		return schemaPath
	}
	if env := os.Getenv("TAXONOPY_SCHEMA"); env != "" {
		return env
	}
	return "schema.json"
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("TAXONOPY_DB"); env != "" {
		return env
	}
	return "db.json"
}

func loadSchema() *schema.Tree {
	t, err := schema.Load(getSchemaPath())
	if err != nil {
		exitErr("load schema", err)
	}
	return t
}

func openDB(checkExisting bool) *db.Store {
	s, err := db.Open(getDBPath(), checkExisting)
	if err != nil {
		exitErr("open database", err)
	}
	return s
}

// queryFromFlags builds the query surface shared by the searching
// commands: a path argument plus --value and --exact flags. An omitted
// --value means a presence-only query.
func queryFromFlags(cmd *cobra.Command, path string) db.Query {
	exact, _ := cmd.Flags().GetBool("exact")
	if !cmd.Flags().Changed("value") {
		return db.MakeQuery(path, nil, exact)
	}
	value, _ := cmd.Flags().GetString("value")
	return db.MakeQuery(path, &value, exact)
}

// parsePairs parses key=value arguments. Values are always strings.
func parsePairs(args []string) (map[string]string, error) {
	out := map[string]string{}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		out[key] = value
	}
	return out, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
