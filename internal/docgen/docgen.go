// Package docgen formats the schema as a pandoc markdown glossary, with
// section anchors suitable for pandoc-crossref.
package docgen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dataonlygreater/taxonopy/internal/schema"
)

// Options controls the generated document. Zero values fall back to the
// defaults below.
type Options struct {
	Title      string
	Width      int
	DateFormat string // Go reference-time layout
	Now        time.Time
}

const (
	defaultTitle      = "Schema Glossary"
	defaultWidth      = 120
	defaultDateFormat = "2 January 2006"
)

// Document renders the schema walk as markdown: a title block followed
// by one section per field, heading depth tracking tree depth.
func Document(t *schema.Tree, opts Options) string {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.DateFormat == "" {
		opts.DateFormat = defaultDateFormat
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%% %s\n", opts.Title)
	fmt.Fprintf(&b, "%% %s\n", opts.Now.Format(opts.DateFormat))

	t.Walk(func(n *schema.Node) error {
		depth := strings.Count(n.Path(), schema.PathSep) + 1
		if depth > 6 {
			depth = 6
		}
		fmt.Fprintf(&b, "\n%s %s {#sec:%s}\n\n", strings.Repeat("#", depth), n.Name(), slug(n.Path()))
		fmt.Fprintf(&b, "*Path*: `%s`\n", n.Path())
		if body := describe(n); body != "" {
			b.WriteString("\n")
			b.WriteString(wrap(body, opts.Width))
			b.WriteString("\n")
		}
		return nil
	})
	return b.String()
}

// describe turns the attribute mapping into a sentence per attribute,
// reserved keys first.
func describe(n *schema.Node) string {
	attrs := n.Attrs()
	var parts []string

	parts = append(parts, fmt.Sprintf("Type: %s.", n.Type()))
	delete(attrs, schema.AttrType)

	if v, ok := attrs[schema.AttrRequired]; ok {
		parts = append(parts, fmt.Sprintf("Required: %s.", v))
		delete(attrs, schema.AttrRequired)
	}
	if choices := n.Choices(); choices != nil {
		parts = append(parts, fmt.Sprintf("Choices: %s.", strings.Join(choices, ", ")))
		delete(attrs, schema.AttrChoices)
	}

	rest := make([]string, 0, len(attrs))
	for k := range attrs {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, fmt.Sprintf("%s: %s.", capitalize(k), attrs[k]))
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func slug(path string) string {
	s := strings.ToLower(path)
	s = strings.ReplaceAll(s, schema.PathSep, "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// wrap breaks text on spaces so no line exceeds width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line)
			b.WriteString("\n")
			line = word
			continue
		}
		line += " " + word
	}
	b.WriteString(line)
	return b.String()
}
