package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dataonlygreater/taxonopy/internal/schema"
)

func TestTreeWritesDot(t *testing.T) {
	tree := schema.New()
	if _, err := tree.AddNode("person", "", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.AddNode("age", "person", map[string]string{"type": "int"}); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "schema.dot")
	if err := Tree(tree, out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	if !strings.Contains(src, "digraph") {
		t.Error("expected DOT source")
	}
	if !strings.Contains(src, "age") {
		t.Error("expected child node label")
	}
	if !strings.Contains(src, "->") {
		t.Error("expected an edge from root to child")
	}
}

func TestTreeEmptySchema(t *testing.T) {
	if err := Tree(schema.New(), filepath.Join(t.TempDir(), "x.dot")); err == nil {
		t.Error("empty schema must not render")
	}
}

func TestTreeNoExtension(t *testing.T) {
	tree := schema.New()
	if _, err := tree.AddNode("person", "", nil); err != nil {
		t.Fatal(err)
	}
	if err := Tree(tree, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("output path without extension must fail")
	}
}
