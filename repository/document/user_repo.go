package document

import (
	"context"
	"errors"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
)

type userRepository struct {
	store docstore.Store
}

// NewUserRepository returns a document-store-backed UserRepository.
func NewUserRepository(store docstore.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionUser, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user := decodeUser(doc)
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := r.store.Put(ctx, docstore.CollectionUser, user.ID, encodeUser(user)); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateCities rewrites the cities references of a user document, leaving
// the remaining fields untouched.
func (r *userRepository) UpdateCities(ctx context.Context, userID string, cityIDs []string) error {
	doc, err := r.store.Get(ctx, docstore.CollectionUser, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	fields := doc.Fields()
	fields["cities"] = cityRefs(cityIDs)
	return r.store.Put(ctx, docstore.CollectionUser, userID, fields)
}
