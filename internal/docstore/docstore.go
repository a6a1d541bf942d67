// Package docstore defines the narrow access surface over the remote
// document store. Collections are loosely linked: relationships are plain
// reference values, never dereferenced implicitly.
package docstore

import (
	"context"
	"errors"
	"time"
)

// Collection names used by the catalog.
const (
	CollectionEvent      = "event"
	CollectionCity       = "city"
	CollectionDepartment = "department"
	CollectionType       = "type"
	CollectionPhoto      = "photo"
	CollectionPayment    = "payment"
	CollectionUser       = "user"
)

// ErrNotFound reports a missing document, as opposed to a transport failure.
var ErrNotFound = errors.New("docstore: document not found")

// Ref identifies a document in another collection. A zero Ref means the
// reference field is absent.
type Ref struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

func (r Ref) IsZero() bool {
	return r.Collection == "" && r.ID == ""
}

// NewRef builds a reference value.
func NewRef(collection, id string) Ref {
	return Ref{Collection: collection, ID: id}
}

// Document is a read-only snapshot of one stored document. Field accessors
// return zero values for missing or mistyped fields.
type Document struct {
	id     string
	fields map[string]interface{}
}

// NewDocument wraps an id and a field map into a Document.
func NewDocument(id string, fields map[string]interface{}) Document {
	return Document{id: id, fields: fields}
}

func (d Document) ID() string {
	return d.id
}

// Fields returns a copy of the raw field map.
func (d Document) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

func (d Document) Str(name string) string {
	if v, ok := d.fields[name].(string); ok {
		return v
	}
	return ""
}

func (d Document) Float(name string) float64 {
	switch v := d.fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (d Document) Bool(name string) bool {
	v, _ := d.fields[name].(bool)
	return v
}

// Time returns the field as a timestamp. Stored values may be time.Time or
// an RFC3339 string, depending on the backend.
func (d Document) Time(name string) (time.Time, bool) {
	switch v := d.fields[name].(type) {
	case time.Time:
		return v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Ref returns a single-valued reference field, or the zero Ref if the field
// is absent or list-valued.
func (d Document) Ref(name string) Ref {
	if v, ok := d.fields[name].(Ref); ok {
		return v
	}
	return Ref{}
}

// Refs returns a list-valued reference field in stored order. Non-reference
// entries are dropped.
func (d Document) Refs(name string) []Ref {
	raw, ok := d.fields[name].([]interface{})
	if !ok {
		if refs, ok := d.fields[name].([]Ref); ok {
			return refs
		}
		return nil
	}
	var refs []Ref
	for _, item := range raw {
		if ref, ok := item.(Ref); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Query narrows a List call. The store guarantees field equality (on scalar
// or reference values) and a result limit; anything richer belongs to the
// caller.
type Query struct {
	Field  string
	Equals interface{}
	Limit  int
}

// Store is the transport-agnostic surface the aggregation engine requires.
type Store interface {
	// Get fetches a single document. Returns ErrNotFound when the id does
	// not exist in the collection.
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns the documents of a collection matching the query. A zero
	// Query matches everything.
	List(ctx context.Context, collection string, q Query) ([]Document, error)
	// Put creates or replaces a document.
	Put(ctx context.Context, collection, id string, fields map[string]interface{}) error
}
