package document

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
)

type eventRepository struct {
	store docstore.Store
}

// NewEventRepository returns a document-store-backed EventRepository.
func NewEventRepository(store docstore.Store) repository.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionEvent, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	event := decodeEvent(doc)
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	docs, err := r.store.List(ctx, docstore.CollectionEvent, docstore.Query{})
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, decodeEvent(doc))
	}
	return events, nil
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID string) ([]domain.Event, error) {
	docs, err := r.store.List(ctx, docstore.CollectionEvent, docstore.Query{
		Field:  "creator",
		Equals: docstore.NewRef(docstore.CollectionUser, userID),
	})
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, decodeEvent(doc))
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, domain.ErrInvalidPayload
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := r.store.Put(ctx, docstore.CollectionEvent, event.ID, encodeEvent(event)); err != nil {
		return nil, err
	}
	return event, nil
}
