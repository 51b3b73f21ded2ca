// Package schema implements the hierarchical field schema: a rooted tree
// of named, attributed nodes addressed by /-separated paths.
package schema

import (
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// PathSep separates field names in a path. A node's path is the names
// from the root down to the node, root name included.
const PathSep = "/"

// Reserved attribute keys consumed by the validation layer.
const (
	AttrType     = "type"
	AttrRequired = "required"
	AttrChoices  = "choices"
)

// ChoicesSep delimits the legal values inside a choices attribute.
const ChoicesSep = "::"

// DefaultType is assumed for a field that carries no type attribute.
const DefaultType = "str"

// Node is a single schema field: a name, a flat attribute mapping and a
// set of children unique by name.
type Node struct {
	name     string
	attrs    map[string]string
	parent   *Node
	children map[string]*Node
	order    []string
}

func newNode(name string, attrs map[string]string) *Node {
	n := &Node{
		name:     name,
		attrs:    map[string]string{},
		children: map[string]*Node{},
	}
	for k, v := range attrs {
		n.attrs[k] = v
	}
	return n
}

// Name returns the field name.
func (n *Node) Name() string { return n.name }

// Path returns the /-joined names from the root to this node.
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSep)
}

// Attr looks up a single attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attrs returns a copy of the attribute mapping.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Type returns the type attribute, or DefaultType when unset.
func (n *Node) Type() string {
	if v, ok := n.attrs[AttrType]; ok {
		return v
	}
	return DefaultType
}

// Required reports whether the required attribute is set to a true value.
func (n *Node) Required() bool {
	v, ok := n.attrs[AttrRequired]
	return ok && strings.EqualFold(v, "true")
}

// Choices returns the parsed choices attribute, or nil when unset.
func (n *Node) Choices() []string {
	v, ok := n.attrs[AttrChoices]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ChoicesSep)
}

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

func (n *Node) child(name string) *Node { return n.children[name] }

func (n *Node) attach(child *Node) {
	child.parent = n
	n.children[child.name] = child
	n.order = append(n.order, child.name)
}

func (n *Node) detach(name string) {
	child, ok := n.children[name]
	if !ok {
		return
	}
	child.parent = nil
	delete(n.children, name)
	for i, o := range n.order {
		if o == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

func (n *Node) clone() *Node {
	c := newNode(n.name, n.attrs)
	for _, name := range n.order {
		c.attach(n.children[name].clone())
	}
	return c
}

// sortedAttrs renders the attributes as "k=v" pairs in key order.
func (n *Node) sortedAttrs() []string {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+n.attrs[k])
	}
	return out
}

// Tree is a field schema: at most one root node at any time.
type Tree struct {
	root *Node
}

// New returns an empty tree with no root.
func New() *Tree { return &Tree{} }

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// FindByPath resolves a /-separated path from the root. The first segment
// must be the root name.
func (t *Tree) FindByPath(path string) (*Node, error) {
	segments := strings.Split(path, PathSep)
	if t.root == nil || len(segments) == 0 || segments[0] != t.root.name {
		return nil, &PathNotFoundError{Path: path}
	}
	cur := t.root
	for _, seg := range segments[1:] {
		next := cur.child(seg)
		if next == nil {
			return nil, &PathNotFoundError{Path: path}
		}
		cur = next
	}
	return cur, nil
}

// AddNode creates a node under parentPath. An empty parentPath replaces
// the whole tree with a new root; this is destructive and the previous
// tree is not recoverable. Root creation applies default attributes
// type=str and required=True when unset; child creation applies only the
// attributes given. Adding a child whose name is already taken fails with
// DuplicatePathError; use UpsertNode to replace.
func (t *Tree) AddNode(name, parentPath string, attrs map[string]string) (*Node, error) {
	if parentPath == "" {
		root := newNode(name, attrs)
		if _, ok := root.attrs[AttrType]; !ok {
			root.attrs[AttrType] = DefaultType
		}
		if _, ok := root.attrs[AttrRequired]; !ok {
			root.attrs[AttrRequired] = "True"
		}
		t.root = root
		return root, nil
	}

	parent, err := t.FindByPath(parentPath)
	if err != nil {
		return nil, err
	}
	if parent.child(name) != nil {
		return nil, &DuplicatePathError{Path: parentPath + PathSep + name}
	}
	child := newNode(name, attrs)
	parent.attach(child)
	return child, nil
}

// UpsertNode adds a node under parentPath, detaching any existing node
// (and its subtree) with the same name first. After the call the node at
// parentPath/name carries exactly the given attributes and no children.
func (t *Tree) UpsertNode(name, parentPath string, attrs map[string]string) (*Node, error) {
	if parentPath == "" {
		return t.AddNode(name, "", attrs)
	}
	parent, err := t.FindByPath(parentPath)
	if err != nil {
		return nil, err
	}
	parent.detach(name)
	child := newNode(name, attrs)
	parent.attach(child)
	return child, nil
}

// DeleteNode detaches the node at path together with its subtree.
// Deleting the root path empties the tree.
func (t *Tree) DeleteNode(path string) error {
	node, err := t.FindByPath(path)
	if err != nil {
		return err
	}
	if node.parent == nil {
		t.root = nil
		return nil
	}
	node.parent.detach(node.name)
	return nil
}

// Subtree returns an independent copy of the subtree rooted at path. The
// copy's root is the addressed node, so paths within the copy restart at
// its name. Edits to the copy do not propagate back.
func (t *Tree) Subtree(path string) (*Tree, error) {
	node, err := t.FindByPath(path)
	if err != nil {
		return nil, err
	}
	return &Tree{root: node.clone()}, nil
}

// Walk visits every node depth-first from the root, parents before
// children, and calls fn with each. A non-nil error from fn stops the
// walk. This read-only traversal is the only interface exposed to the
// rendering, documentation and spreadsheet adapters.
func (t *Tree) Walk(fn func(*Node) error) error {
	if t.root == nil {
		return nil
	}
	return walk(t.root, fn)
}

func walk(n *Node, fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Paths returns every node path in walk order.
func (t *Tree) Paths() []string {
	var out []string
	t.Walk(func(n *Node) error {
		out = append(out, n.Path())
		return nil
	})
	return out
}

// String renders the tree as ASCII art, one node per line with its
// attributes.
func (t *Tree) String() string {
	if t.root == nil {
		return ""
	}
	render := treeprint.NewWithRoot(nodeLabel(t.root))
	for _, child := range t.root.Children() {
		addBranch(render, child)
	}
	return strings.TrimRight(render.String(), "\n")
}

func addBranch(parent treeprint.Tree, n *Node) {
	if len(n.order) == 0 {
		parent.AddNode(nodeLabel(n))
		return
	}
	branch := parent.AddBranch(nodeLabel(n))
	for _, child := range n.Children() {
		addBranch(branch, child)
	}
}

func nodeLabel(n *Node) string {
	attrs := n.sortedAttrs()
	if len(attrs) == 0 {
		return n.name
	}
	return n.name + " " + strings.Join(attrs, " ")
}
