package schema

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/dataonlygreater/taxonopy/internal/osutil"
)

// nodeDoc is the serialized form of a node. The schema file is one
// nodeDoc for the root, nested recursively.
type nodeDoc struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
	Children   []nodeDoc         `json:"children,omitempty"`
}

func encodeNode(n *Node) nodeDoc {
	doc := nodeDoc{
		Name:       n.name,
		Attributes: n.Attrs(),
	}
	for _, child := range n.Children() {
		doc.Children = append(doc.Children, encodeNode(child))
	}
	return doc
}

func decodeNode(doc nodeDoc) (*Node, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("node without a name")
	}
	n := newNode(doc.Name, doc.Attributes)
	for _, childDoc := range doc.Children {
		child, err := decodeNode(childDoc)
		if err != nil {
			return nil, err
		}
		if n.child(child.name) != nil {
			return nil, fmt.Errorf("duplicate child %q under %q", child.name, doc.Name)
		}
		n.attach(child)
	}
	return n, nil
}

// Load reads a schema tree from the JSON file at path. A missing or
// malformed file fails with an error matching ErrNotFound.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
	}
	var doc nodeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotFound, path, err)
	}
	root, err := decodeNode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotFound, path, err)
	}
	return &Tree{root: root}, nil
}

// Save writes the tree to path as indented JSON. The write is atomic: a
// failure leaves any previous file contents intact.
func (t *Tree) Save(path string) error {
	if t.root == nil {
		return fmt.Errorf("save schema: tree is empty")
	}
	data, err := json.MarshalIndent(encodeNode(t.root), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')
	if err := osutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save schema: %w", err)
	}
	return nil
}
