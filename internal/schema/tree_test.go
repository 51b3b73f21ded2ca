package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personTree(t *testing.T) *Tree {
	t.Helper()
	tree := New()
	_, err := tree.AddNode("person", "", nil)
	require.NoError(t, err)
	_, err = tree.AddNode("age", "person", map[string]string{"type": "int"})
	require.NoError(t, err)
	_, err = tree.AddNode("address", "person", nil)
	require.NoError(t, err)
	_, err = tree.AddNode("city", "person/address", nil)
	require.NoError(t, err)
	return tree
}

func TestAddNodeRootDefaults(t *testing.T) {
	tree := New()
	root, err := tree.AddNode("person", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "str", root.Type())
	assert.True(t, root.Required())
	assert.Equal(t, "person", root.Path())
}

func TestAddNodeChildNoDefaults(t *testing.T) {
	tree := personTree(t)

	city, err := tree.FindByPath("person/address/city")
	require.NoError(t, err)
	assert.Empty(t, city.Attrs(), "non-root additions apply only explicit attributes")
	assert.Equal(t, "str", city.Type(), "type falls back to str when unset")
}

func TestFindByPath(t *testing.T) {
	tree := personTree(t)

	age, err := tree.FindByPath("person/age")
	require.NoError(t, err)
	assert.Equal(t, "age", age.Name())
	assert.Equal(t, "person/age", age.Path())

	_, err = tree.FindByPath("person/missing")
	var notFound *PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "person/missing", notFound.Path)

	_, err = tree.FindByPath("stranger/age")
	assert.ErrorAs(t, err, &notFound)
}

func TestAddNodeDuplicate(t *testing.T) {
	tree := personTree(t)

	_, err := tree.AddNode("age", "person", nil)
	var dup *DuplicatePathError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "person/age", dup.Path)
}

func TestUpsertNodeReplaces(t *testing.T) {
	tree := personTree(t)

	_, err := tree.UpsertNode("address", "person", map[string]string{"type": "str"})
	require.NoError(t, err)

	addr, err := tree.FindByPath("person/address")
	require.NoError(t, err)
	assert.Empty(t, addr.Children(), "replacement starts with no children")

	_, err = tree.FindByPath("person/address/city")
	assert.Error(t, err, "old subtree is detached")
}

func TestDeleteNode(t *testing.T) {
	tree := personTree(t)

	require.NoError(t, tree.DeleteNode("person/address"))
	_, err := tree.FindByPath("person/address")
	assert.Error(t, err)
	_, err = tree.FindByPath("person/address/city")
	assert.Error(t, err)

	err = tree.DeleteNode("person/address")
	var notFound *PathNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteRootEmptiesTree(t *testing.T) {
	tree := personTree(t)
	require.NoError(t, tree.DeleteNode("person"))
	assert.True(t, tree.IsEmpty())
}

func TestRootReplaceIsDestructive(t *testing.T) {
	tree := personTree(t)

	_, err := tree.AddNode("company", "", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"company"}, tree.Paths())
	_, err = tree.FindByPath("person")
	assert.Error(t, err)
}

func TestPathUniqueness(t *testing.T) {
	tree := personTree(t)
	_, err := tree.UpsertNode("age", "person", nil)
	require.NoError(t, err)
	require.NoError(t, tree.DeleteNode("person/address/city"))
	_, err = tree.AddNode("city", "person/address", nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range tree.Paths() {
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
}

func TestSubtreeIsIndependentCopy(t *testing.T) {
	tree := personTree(t)

	sub, err := tree.Subtree("person/address")
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "address/city"}, sub.Paths())

	_, err = sub.AddNode("country", "address", nil)
	require.NoError(t, err)
	require.NoError(t, sub.DeleteNode("address/city"))

	_, err = tree.FindByPath("person/address/city")
	assert.NoError(t, err, "edits to the copy must not propagate")
	_, err = tree.FindByPath("person/address/country")
	assert.Error(t, err)
}

func TestChoices(t *testing.T) {
	tree := New()
	_, err := tree.AddNode("colour", "", map[string]string{"choices": "red::green::blue"})
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, []string{"red", "green", "blue"}, root.Choices())
}

func TestString(t *testing.T) {
	tree := personTree(t)
	out := tree.String()

	assert.Contains(t, out, "person required=True type=str")
	assert.Contains(t, out, "age type=int")
	assert.Contains(t, out, "city")
}
