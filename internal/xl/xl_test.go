package xl

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dataonlygreater/taxonopy/internal/db"
	"github.com/dataonlygreater/taxonopy/internal/schema"
	"github.com/dataonlygreater/taxonopy/internal/validate"
)

func testSchema(t *testing.T) *schema.Tree {
	t.Helper()
	tree := schema.New()
	if _, err := tree.AddNode("person", "", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.AddNode("age", "person", map[string]string{"type": "int"}); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.AddNode("colour", "person", map[string]string{"choices": "red::green::blue"}); err != nil {
		t.Fatal(err)
	}
	return tree
}

func testStore(t *testing.T, records ...db.Record) *db.Store {
	t.Helper()
	s, err := db.Open(filepath.Join(t.TempDir(), "db.json"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	for _, r := range records {
		s.NewRecord(r)
	}
	return s
}

func TestDumpLoadRoundTrip(t *testing.T) {
	tree := testSchema(t)
	store := testStore(t,
		db.Record{"person": "Alice", "person/age": "30", "person/colour": []any{"red", "blue"}},
		db.Record{"person": "Bob", "person/colour": "green"},
	)

	dir := t.TempDir()
	xlPath := filepath.Join(dir, "dump.xlsx")
	if err := Dump(xlPath, tree, store); err != nil {
		t.Fatalf("dump: %v", err)
	}

	dbPath := filepath.Join(dir, "loaded.json")
	if err := Load(dbPath, xlPath, tree, true, false); err != nil {
		t.Fatalf("load: %v", err)
	}

	loaded, err := db.Open(dbPath, true)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()

	missing := validate.NonMatchingRecords(store.ToRecords(), loaded.ToRecords())
	if len(missing) != 0 {
		t.Errorf("round-trip altered records: %v", missing)
	}
}

func TestLoadStrictRejects(t *testing.T) {
	tree := testSchema(t)
	store := testStore(t, db.Record{"person": "Alice", "person/age": "thirty"})

	dir := t.TempDir()
	xlPath := filepath.Join(dir, "dump.xlsx")
	if err := Dump(xlPath, tree, store); err != nil {
		t.Fatal(err)
	}

	err := Load(filepath.Join(dir, "loaded.json"), xlPath, tree, true, false)
	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLoadForceDropsBadValues(t *testing.T) {
	tree := testSchema(t)
	store := testStore(t, db.Record{"person": "Alice", "person/age": "thirty"})

	dir := t.TempDir()
	xlPath := filepath.Join(dir, "dump.xlsx")
	if err := Dump(xlPath, tree, store); err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(dir, "loaded.json")
	if err := Load(dbPath, xlPath, tree, false, false); err != nil {
		t.Fatalf("force load: %v", err)
	}

	loaded, err := db.Open(dbPath, true)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()

	if loaded.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", loaded.Len())
	}
	if n := loaded.Count(db.MakeQuery("person/age", nil, false)); n != 0 {
		t.Error("non-conforming value should have been dropped")
	}
	name := "Alice"
	if n := loaded.Count(db.MakeQuery("person", &name, true)); n != 1 {
		t.Error("conforming values should survive a force load")
	}
}

func TestLoadUnknownHeader(t *testing.T) {
	tree := testSchema(t)
	store := testStore(t, db.Record{"person": "Alice"})

	dir := t.TempDir()
	xlPath := filepath.Join(dir, "dump.xlsx")
	if err := Dump(xlPath, tree, store); err != nil {
		t.Fatal(err)
	}

	// a narrower schema no longer knows the dumped columns
	narrow := schema.New()
	if _, err := narrow.AddNode("company", "", nil); err != nil {
		t.Fatal(err)
	}

	err := Load(filepath.Join(dir, "loaded.json"), xlPath, narrow, true, false)
	var notFound *schema.PathNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PathNotFoundError, got %v", err)
	}
}

func TestLoadMissingWorkbook(t *testing.T) {
	tree := testSchema(t)
	dir := t.TempDir()

	err := Load(filepath.Join(dir, "db.json"), filepath.Join(dir, "nope.xlsx"), tree, true, false)
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
