package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathAttrs flattens a tree to its (path, attributes) pairs.
func pathAttrs(t *Tree) map[string]map[string]string {
	out := map[string]map[string]string{}
	t.Walk(func(n *Node) error {
		out[n.Path()] = n.Attrs()
		return nil
	})
	return out
}

func TestRoundTrip(t *testing.T) {
	tree := personTree(t)
	_, err := tree.AddNode("colour", "person", map[string]string{"choices": "red::green::blue"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, tree.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, pathAttrs(tree), pathAttrs(loaded))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadDuplicateChildren(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	doc := `{"name":"a","attributes":{},"children":[{"name":"b","attributes":{}},{"name":"b","attributes":{}}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveEmptyTree(t *testing.T) {
	err := New().Save(filepath.Join(t.TempDir(), "schema.json"))
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")

	tree := personTree(t)
	require.NoError(t, tree.Save(path))
	require.NoError(t, tree.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "schema.json", entries[0].Name())
}
