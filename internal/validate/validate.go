// Package validate checks stored records against the schema and diffs
// record sets. The checks here are structural; the narrower type and
// choices check used by strict spreadsheet loading is Value.
package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dataonlygreater/taxonopy/internal/db"
	"github.com/dataonlygreater/taxonopy/internal/schema"
)

// ValidationError reports a value that fails a field's type or choices
// constraint during strict loading.
type ValidationError struct {
	Path   string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Path, e.Reason)
}

// NonMatchingNodes walks every record in the store and collects the
// field paths that do not resolve in the schema tree, keyed by record
// identifier. Only offending records appear in the result; an empty
// result means full structural conformance. Values are not inspected.
func NonMatchingNodes(store *db.Store, tree *schema.Tree) map[string][]string {
	out := map[string][]string{}
	for id, r := range store.ToRecords() {
		var bad []string
		for path := range r {
			if _, err := tree.FindByPath(path); err != nil {
				bad = append(bad, path)
			}
		}
		if len(bad) > 0 {
			sort.Strings(bad)
			out[id] = bad
		}
	}
	return out
}

// NonMatchingRecords compares two record sets by content and returns the
// sorted identifiers, from either side, whose canonical form has no
// counterpart in the other. Identifier numbering and iteration order do
// not matter; two stores are equal iff the result is empty, in which
// case the reversed call is empty too.
func NonMatchingRecords(one, two map[string]db.Record) []string {
	var missing []string
	missing = append(missing, oneWay(one, two)...)
	missing = append(missing, oneWay(two, one)...)
	sort.Strings(missing)
	return missing
}

func oneWay(from, against map[string]db.Record) []string {
	forms := map[string]int{}
	for _, r := range against {
		forms[canonical(r)]++
	}
	var missing []string
	for id, r := range from {
		form := canonical(r)
		if forms[form] > 0 {
			forms[form]--
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

// canonical renders a record as sorted path=value lines, so comparison
// is independent of field iteration order.
func canonical(r db.Record) string {
	lines := make([]string, 0, len(r))
	for path, v := range r {
		lines = append(lines, path+"="+db.Stringify(v))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// Tally is the record count for one legal choice value.
type Tally struct {
	Choice string
	Count  int
}

// ChoiceCount counts, for a field carrying a choices attribute, how many
// records hold each choice at the given path. Tallies come back in the
// order the choices are declared.
func ChoiceCount(path string, store *db.Store, tree *schema.Tree) ([]Tally, error) {
	node, err := tree.FindByPath(path)
	if err != nil {
		return nil, err
	}
	choices := node.Choices()
	if choices == nil {
		return nil, fmt.Errorf("field %s has no choices attribute", path)
	}
	out := make([]Tally, 0, len(choices))
	for _, choice := range choices {
		c := choice
		q := db.MakeQuery(path, &c, true)
		out = append(out, Tally{Choice: choice, Count: store.Count(q)})
	}
	return out, nil
}

// Value checks a raw value against a field's type and choices
// attributes. Unknown type tags are treated as str. This is the strict
// check applied during spreadsheet loading, deliberately separate from
// the structural walk above.
func Value(node *schema.Node, raw string) error {
	if choices := node.Choices(); choices != nil {
		found := false
		for _, c := range choices {
			if raw == c {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{
				Path:   node.Path(),
				Value:  raw,
				Reason: fmt.Sprintf("not one of %s", strings.Join(choices, ", ")),
			}
		}
	}

	switch node.Type() {
	case "int":
		if _, err := strconv.Atoi(raw); err != nil {
			return &ValidationError{Path: node.Path(), Value: raw, Reason: "not an int"}
		}
	case "float":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return &ValidationError{Path: node.Path(), Value: raw, Reason: "not a float"}
		}
	case "bool":
		if _, err := strconv.ParseBool(raw); err != nil {
			return &ValidationError{Path: node.Path(), Value: raw, Reason: "not a bool"}
		}
	}
	return nil
}
