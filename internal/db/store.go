// Package db implements the JSON document store: records keyed by a
// store-assigned identifier, each record a flat mapping from field path
// to value.
package db

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"

	"github.com/dataonlygreater/taxonopy/internal/osutil"
)

// ErrNotFound indicates a database file that is missing when required,
// or unreadable.
var ErrNotFound = errors.New("database not found")

// Record maps field paths to values. Values are scalars or lists; a
// nested field is addressed by its full /-joined path.
type Record map[string]any

// Clone returns a copy of the record. List values are copied, so edits
// to the clone do not leak back.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]any); ok {
			v = append([]any(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Store is an in-memory record set backed by a JSON file. All reads and
// writes go through the cache; Flush commits it to disk. The design is
// single-writer: two processes racing on the same file is not handled.
type Store struct {
	path    string
	records map[string]Record
	order   []string
	entropy *rand.Rand
}

// Open loads the store at path. With checkExisting set a missing file
// fails with ErrNotFound; otherwise the store starts empty and the file
// is created on the first Flush. A file that exists but cannot be parsed
// always fails.
func Open(path string, checkExisting bool) (*Store, error) {
	s := &Store{
		path:    path,
		records: map[string]Record{},
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if checkExisting {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotFound, path, err)
	}
	for id := range s.records {
		s.order = append(s.order, id)
	}
	sort.Strings(s.order)
	return s, nil
}

// Path returns the backing file path, empty for a search view.
func (s *Store) Path() string { return s.path }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// IDs returns the record identifiers in insertion order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// NewRecord appends a copy of the record under a fresh identifier and
// returns the identifier.
func (s *Store) NewRecord(r Record) string {
	id := s.newID()
	s.records[id] = r.Clone()
	s.order = append(s.order, id)
	return id
}

// Count returns the number of records matching the query.
func (s *Store) Count(q Query) int {
	n := 0
	for _, id := range s.order {
		if q.Match(s.records[id]) {
			n++
		}
	}
	return n
}

// Search returns a store-like view restricted to the matching records.
// The view has no backing file: it serves chained reporting through
// Count and ToRecords, and flushing it fails.
func (s *Store) Search(q Query) *Store {
	view := &Store{
		records: map[string]Record{},
		entropy: s.entropy,
	}
	for _, id := range s.order {
		if q.Match(s.records[id]) {
			view.records[id] = s.records[id]
			view.order = append(view.order, id)
		}
	}
	return view
}

// UpdateRecords sets a value on every record matching the query and
// returns how many were touched; zero matches is a no-op, not an error.
// The field written is the query path unless a different field path is
// given. Other fields of a matched record are left as they are.
func (s *Store) UpdateRecords(q Query, value string, field string) int {
	target := field
	if target == "" {
		target = q.Path
	}
	n := 0
	for _, id := range s.order {
		if q.Match(s.records[id]) {
			s.records[id][target] = value
			n++
		}
	}
	return n
}

// ToRecords materializes all records keyed by identifier. The result is
// a copy and safe to hold after Close.
func (s *Store) ToRecords() map[string]Record {
	out := make(map[string]Record, len(s.records))
	for id, r := range s.records {
		out[id] = r.Clone()
	}
	return out
}

// Flush commits the cache to the backing file. The write goes to a
// temporary file first and is renamed over the live one, so a crash
// mid-flush leaves the previous state loadable.
func (s *Store) Flush() error {
	if s.path == "" {
		return fmt.Errorf("flush: search view has no backing file")
	}
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal database: %w", err)
	}
	data = append(data, '\n')
	if err := osutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("flush database: %w", err)
	}
	return nil
}

// Close releases the store. It does NOT flush: callers needing
// persistence must call Flush first. The store must not be used after
// Close.
func (s *Store) Close() error {
	s.records = nil
	s.order = nil
	return nil
}
