package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/agora/backend/internal/docstore"
)

func TestGetMissingDocument(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), docstore.CollectionEvent, "nope")
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPutThenGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.Put(ctx, docstore.CollectionCity, "c1", map[string]interface{}{"name": "Lyon"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	doc, err := store.Get(ctx, docstore.CollectionCity, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.ID() != "c1" || doc.Str("name") != "Lyon" {
		t.Fatalf("doc = %v/%q, want c1/Lyon", doc.ID(), doc.Str("name"))
	}
}

func TestListOrdersByID(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		if err := store.Put(ctx, docstore.CollectionEvent, id, map[string]interface{}{"name": id}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	docs, err := store.List(ctx, docstore.CollectionEvent, docstore.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if docs[i].ID() != want {
			t.Fatalf("docs[%d].ID = %q, want %q", i, docs[i].ID(), want)
		}
	}
}

func TestListFiltersOnReferenceEquality(t *testing.T) {
	store := New()
	ctx := context.Background()
	ref := docstore.NewRef(docstore.CollectionEvent, "e1")
	if err := store.Put(ctx, docstore.CollectionPhoto, "ph1", map[string]interface{}{"event": ref}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, docstore.CollectionPhoto, "ph2", map[string]interface{}{
		"event": docstore.NewRef(docstore.CollectionEvent, "e2"),
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	docs, err := store.List(ctx, docstore.CollectionPhoto, docstore.Query{Field: "event", Equals: ref})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].ID() != "ph1" {
		t.Fatalf("docs = %v, want just ph1", docs)
	}
}

func TestListHonorsLimit(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, docstore.CollectionEvent, id, map[string]interface{}{}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	docs, err := store.List(ctx, docstore.CollectionEvent, docstore.Query{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
}

func TestDocumentsAreSnapshots(t *testing.T) {
	store := New()
	ctx := context.Background()
	if err := store.Put(ctx, docstore.CollectionCity, "c1", map[string]interface{}{"name": "Lyon"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	doc, _ := store.Get(ctx, docstore.CollectionCity, "c1")
	fields := doc.Fields()
	fields["name"] = "mutated"

	again, _ := store.Get(ctx, docstore.CollectionCity, "c1")
	if again.Str("name") != "Lyon" {
		t.Fatalf("stored document was mutated through a snapshot")
	}
}
