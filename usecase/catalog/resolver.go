package catalog

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/agora/backend/internal/docstore"
)

// Resolved maps a reference field path to the documents it resolved to, in
// reference order. Paths whose references were absent or failed to fetch
// are simply missing from the map; callers substitute their own sentinels.
type Resolved map[string][]docstore.Document

// First returns the first document resolved for a path.
func (r Resolved) First(path string) (docstore.Document, bool) {
	docs := r[path]
	if len(docs) == 0 {
		return docstore.Document{}, false
	}
	return docs[0], true
}

// Resolver follows reference fields through the store. Resolution depth is
// bounded by the explicit path list ("city", "city.department", "types");
// there is no dynamic graph walk.
type Resolver struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewResolver(store docstore.Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve fetches the documents behind the named reference paths of doc.
// Sibling paths are fetched concurrently; a failure on one path never
// affects another. Results are keyed by path, never by completion order.
func (r *Resolver) Resolve(ctx context.Context, doc docstore.Document, paths []string) Resolved {
	results := make([][]docstore.Document, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = r.resolvePath(ctx, doc, path)
		}(i, path)
	}
	wg.Wait()

	resolved := make(Resolved, len(paths))
	for i, path := range paths {
		if len(results[i]) > 0 {
			resolved[path] = results[i]
		}
	}
	return resolved
}

// resolvePath walks one dotted path segment by segment. Fan-out happens on
// list-valued segments; unresolvable references are dropped, not errors.
func (r *Resolver) resolvePath(ctx context.Context, doc docstore.Document, path string) []docstore.Document {
	current := []docstore.Document{doc}
	for _, segment := range strings.Split(path, ".") {
		var next []docstore.Document
		for _, d := range current {
			for _, ref := range referencesOf(d, segment) {
				resolved, err := r.store.Get(ctx, ref.Collection, ref.ID)
				if err != nil {
					r.logger.Debug("reference unresolved",
						zap.String("path", path),
						zap.String("collection", ref.Collection),
						zap.String("id", ref.ID),
						zap.Error(err))
					continue
				}
				next = append(next, resolved)
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

func referencesOf(doc docstore.Document, field string) []docstore.Ref {
	if refs := doc.Refs(field); len(refs) > 0 {
		return refs
	}
	if ref := doc.Ref(field); !ref.IsZero() {
		return []docstore.Ref{ref}
	}
	return nil
}
