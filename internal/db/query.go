package db

import (
	"fmt"
	"strings"
)

// Query matches records on a field path and, optionally, on the value
// held at that path.
type Query struct {
	Path  string
	Value *string // nil matches on presence of the path alone
	Exact bool
}

// MakeQuery builds a query from the CLI surface: a required path, an
// optional value and an exact-match flag.
func MakeQuery(path string, value *string, exact bool) Query {
	return Query{Path: path, Value: value, Exact: exact}
}

// Match reports whether the record satisfies the query. A path missing
// from the record is a non-match, never an error. Without a value the
// presence of the path is enough. With a value, Exact compares the
// stringified field value for equality and otherwise the query value
// must occur as a case-sensitive substring. A list-valued field matches
// when any element does.
func (q Query) Match(r Record) bool {
	v, ok := r[q.Path]
	if !ok {
		return false
	}
	if q.Value == nil {
		return true
	}
	return matchValue(v, *q.Value, q.Exact)
}

func matchValue(v any, want string, exact bool) bool {
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if matchValue(item, want, exact) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range list {
			if matchValue(item, want, exact) {
				return true
			}
		}
		return false
	}
	s := Stringify(v)
	if exact {
		return s == want
	}
	return strings.Contains(s, want)
}

// Stringify renders a field value the way queries and exports see it.
// List values are joined with ", ".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
