package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
)

type paymentRepository struct {
	store docstore.Store
}

// NewPaymentRepository returns a document-store-backed PaymentRepository.
func NewPaymentRepository(store docstore.Store) repository.PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	docs, err := r.store.List(ctx, docstore.CollectionPayment, docstore.Query{
		Field:  "user",
		Equals: docstore.NewRef(docstore.CollectionUser, userID),
	})
	if err != nil {
		return nil, err
	}
	payments := make([]domain.Payment, 0, len(docs))
	for _, doc := range docs {
		payments = append(payments, decodePayment(doc))
	}
	return payments, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	fields := map[string]interface{}{
		"amount": payment.Amount,
		"user":   payment.User,
		"event":  payment.Event,
	}
	if err := r.store.Put(ctx, docstore.CollectionPayment, payment.ID, fields); err != nil {
		return nil, err
	}
	return payment, nil
}

type photoRepository struct {
	store docstore.Store
}

// NewPhotoRepository returns a document-store-backed PhotoRepository.
func NewPhotoRepository(store docstore.Store) repository.PhotoRepository {
	return &photoRepository{store: store}
}

func (r *photoRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	docs, err := r.store.List(ctx, docstore.CollectionPhoto, docstore.Query{
		Field:  "event",
		Equals: docstore.NewRef(docstore.CollectionEvent, eventID),
	})
	if err != nil {
		return nil, err
	}
	photos := make([]domain.Photo, 0, len(docs))
	for _, doc := range docs {
		photos = append(photos, decodePhoto(doc))
	}
	return photos, nil
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	if photo == nil || photo.FileURL == "" {
		return nil, domain.ErrInvalidPayload
	}
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	fields := map[string]interface{}{
		"event":    photo.Event,
		"file_url": photo.FileURL,
	}
	if err := r.store.Put(ctx, docstore.CollectionPhoto, photo.ID, fields); err != nil {
		return nil, err
	}
	return photo, nil
}
