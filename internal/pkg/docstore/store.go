// Package docstore is a small document-database abstraction: named
// collections of JSON-like documents addressed by store-assigned ids.
//
// Backends normalise their native value types so that callers always see
// time.Time for timestamps, []any for arrays, map[string]any for nested
// objects and plain Go numerics for numbers.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotFound is returned when a document id does not exist in a collection.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidPath is returned for malformed collection paths.
	ErrInvalidPath = errors.New("invalid collection path")
	// ErrInvalidField is returned for field names that cannot be used in a query.
	ErrInvalidField = errors.New("invalid field name")
)

// Path is a slash separated collection path such as "users" or
// "courses/{id}/lectures". Collection paths always have an odd number of
// segments.
type Path string

// Collection joins segments into a collection path.
func Collection(segments ...string) Path {
	return Path(strings.Join(segments, "/"))
}

// Segments returns the path split on "/".
func (p Path) Segments() []string {
	return strings.Split(string(p), "/")
}

// Root returns the top-level collection name.
func (p Path) Root() string {
	root, _, _ := strings.Cut(string(p), "/")
	return root
}

// Validate checks that the path names a collection.
func (p Path) Validate() error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	segs := p.Segments()
	if len(segs)%2 == 0 {
		return fmt.Errorf("%w: %q names a document, not a collection", ErrInvalidPath, p)
	}
	for _, s := range segs {
		if s == "" || strings.ContainsAny(s, "$\x00") {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return nil
}

// Document is a stored record: its id plus field data.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is an equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query narrows and orders a List call.
type Query struct {
	Where      []Filter
	OrderBy    string
	Descending bool
}

// Eq returns a copy of q with an added equality filter.
func (q Query) Eq(field string, value any) Query {
	q.Where = append(append([]Filter(nil), q.Where...), Filter{Field: field, Value: value})
	return q
}

// Order returns a copy of q ordered by field.
func (q Query) Order(field string, descending bool) Query {
	q.OrderBy = field
	q.Descending = descending
	return q
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateField rejects field names that are not plain identifiers.
func ValidateField(name string) error {
	if !fieldNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidField, name)
	}
	return nil
}

func (q Query) validate() error {
	for _, f := range q.Where {
		if err := ValidateField(f.Field); err != nil {
			return err
		}
	}
	if q.OrderBy != "" {
		return ValidateField(q.OrderBy)
	}
	return nil
}

// Store is the contract every backend fulfils.
type Store interface {
	// List returns every document of the collection matching q. Documents
	// missing the OrderBy field are kept; they sort first ascending and
	// last descending.
	List(ctx context.Context, path Path, q Query) ([]Document, error)
	// Get returns one document or ErrNotFound.
	Get(ctx context.Context, path Path, id string) (Document, error)
	// Create stores data under a new store-assigned id and returns it.
	Create(ctx context.Context, path Path, data map[string]any) (string, error)
	// Update merges fields into an existing document or returns ErrNotFound.
	Update(ctx context.Context, path Path, id string, fields map[string]any) error
	// Delete removes a document or returns ErrNotFound.
	Delete(ctx context.Context, path Path, id string) error
	// Close releases backend resources.
	Close() error
}

func checkArgs(path Path, id string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if id == "" || strings.ContainsAny(id, "/$\x00") {
		return fmt.Errorf("%w: bad document id %q", ErrNotFound, id)
	}
	return nil
}
