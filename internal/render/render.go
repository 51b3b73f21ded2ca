// Package render draws the schema tree with Graphviz.
package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/emicklei/dot"

	"github.com/dataonlygreater/taxonopy/internal/osutil"
	"github.com/dataonlygreater/taxonopy/internal/schema"
)

// Tree writes a Graphviz rendering of the schema to outPath. A .dot or
// .gv extension writes the DOT source directly; any other extension is
// handed to the dot binary as the output format (png, svg, pdf, ...),
// which must be on PATH.
func Tree(t *schema.Tree, outPath string) error {
	if t.IsEmpty() {
		return fmt.Errorf("render: schema is empty")
	}

	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	t.Walk(func(n *schema.Node) error {
		gn := g.Node(n.Path()).Attr("label", label(n)).Attr("shape", "box")
		if i := strings.LastIndex(n.Path(), schema.PathSep); i >= 0 {
			g.Edge(g.Node(n.Path()[:i]), gn)
		}
		return nil
	})
	src := g.String()

	ext := strings.ToLower(filepath.Ext(outPath))
	if ext == ".dot" || ext == ".gv" {
		return osutil.WriteFileAtomic(outPath, []byte(src), 0o644)
	}
	format := strings.TrimPrefix(ext, ".")
	if format == "" {
		return fmt.Errorf("render: output path %s has no extension", outPath)
	}

	cmd := exec.Command("dot", "-T"+format, "-o", outPath)
	cmd.Stdin = strings.NewReader(src)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot -T%s: %v: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func label(n *schema.Node) string {
	return n.Name() + "\n" + n.Type()
}
