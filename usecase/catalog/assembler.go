package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
)

// DefaultPlaceholderImage is served whenever an event has no photo, so
// presentation layers never see an empty image slot.
const DefaultPlaceholderImage = "https://wallpaperbat.com/img/869012-aesthetic-green-background-minimalist-image-free-photo-png-stickers-wallpaper-background.jpg"

const defaultAssembleWorkers = 8

// Reference paths an event view needs. Depth is fixed here; the resolver
// never walks further.
var eventPaths = []string{"city", "city.department", "types"}

// Assembler turns raw event documents into denormalized EventViews,
// absorbing unresolvable references into sentinels.
type Assembler struct {
	store          docstore.Store
	resolver       *Resolver
	placeholderURL string
	workers        int
	logger         *zap.Logger
}

// AssemblerConfig tunes the assembler; zero values pick defaults.
type AssemblerConfig struct {
	PlaceholderImageURL string
	Workers             int
}

func NewAssembler(store docstore.Store, resolver *Resolver, cfg AssemblerConfig, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PlaceholderImageURL == "" {
		cfg.PlaceholderImageURL = DefaultPlaceholderImage
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultAssembleWorkers
	}
	return &Assembler{
		store:          store,
		resolver:       resolver,
		placeholderURL: cfg.PlaceholderImageURL,
		workers:        cfg.Workers,
		logger:         logger,
	}
}

// AssembleEvents assembles a batch concurrently up to the worker limit.
// Results keep the input order regardless of completion order; malformed
// documents are skipped, never aborting the batch.
func (a *Assembler) AssembleEvents(ctx context.Context, docs []docstore.Document) []domain.EventView {
	type slot struct {
		view domain.EventView
		ok   bool
	}

	slots := make([]slot, len(docs))
	sem := make(chan struct{}, a.workers)

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc docstore.Document) {
			defer wg.Done()
			defer func() { <-sem }()
			view, ok := a.assembleEvent(ctx, doc)
			slots[i] = slot{view: view, ok: ok}
		}(i, doc)
	}
	wg.Wait()

	views := make([]domain.EventView, 0, len(docs))
	for _, s := range slots {
		if s.ok {
			views = append(views, s.view)
		}
	}
	return views
}

func (a *Assembler) assembleEvent(ctx context.Context, doc docstore.Document) (domain.EventView, bool) {
	if doc.ID() == "" {
		a.logger.Warn("skipping event document without id")
		return domain.EventView{}, false
	}

	date, ok := doc.Time("date")
	if !ok {
		date = time.Now()
	}

	view := domain.EventView{
		ID:             doc.ID(),
		Name:           doc.Str("name"),
		Description:    doc.Str("description"),
		Place:          doc.Str("place"),
		Date:           date,
		CityName:       domain.UnknownCity,
		DepartmentName: domain.UnknownDepartment,
		Types:          []string{},
	}

	resolved := a.resolver.Resolve(ctx, doc, eventPaths)

	if city, ok := resolved.First("city"); ok {
		if name := city.Str("name"); name != "" {
			view.CityName = name
		}
	}
	if dept, ok := resolved.First("city.department"); ok {
		if name := dept.Str("name"); name != "" {
			view.DepartmentName = name
		}
	}
	for _, typeDoc := range resolved["types"] {
		if name := typeDoc.Str("name"); name != "" {
			view.Types = append(view.Types, name)
		}
	}

	view.ImageURL = a.coverImage(ctx, doc.ID())
	return view, true
}

// coverImage reverse-looks-up the first photo referencing the event.
func (a *Assembler) coverImage(ctx context.Context, eventID string) string {
	photos, err := a.store.List(ctx, docstore.CollectionPhoto, docstore.Query{
		Field:  "event",
		Equals: docstore.NewRef(docstore.CollectionEvent, eventID),
		Limit:  1,
	})
	if err != nil {
		a.logger.Debug("photo lookup failed", zap.String("event_id", eventID), zap.Error(err))
		return a.placeholderURL
	}
	if len(photos) > 0 {
		if url := photos[0].Str("file_url"); url != "" {
			return url
		}
	}
	return a.placeholderURL
}

// EventPhotos returns every photo URL of an event, falling back to the
// placeholder so the result is never empty.
func (a *Assembler) EventPhotos(ctx context.Context, eventID string) ([]string, error) {
	photos, err := a.store.List(ctx, docstore.CollectionPhoto, docstore.Query{
		Field:  "event",
		Equals: docstore.NewRef(docstore.CollectionEvent, eventID),
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load event photos", err)
	}

	var urls []string
	for _, photo := range photos {
		if url := photo.Str("file_url"); url != "" {
			urls = append(urls, url)
		}
	}
	if len(urls) == 0 {
		urls = append(urls, a.placeholderURL)
	}
	return urls, nil
}
