package document

import (
	"context"
	"errors"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
)

type cityRepository struct {
	store docstore.Store
}

// NewCityRepository returns a document-store-backed CityRepository.
func NewCityRepository(store docstore.Store) repository.CityRepository {
	return &cityRepository{store: store}
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionCity, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	city := decodeCity(doc)
	return &city, nil
}

func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	docs, err := r.store.List(ctx, docstore.CollectionCity, docstore.Query{})
	if err != nil {
		return nil, err
	}
	cities := make([]domain.City, 0, len(docs))
	for _, doc := range docs {
		cities = append(cities, decodeCity(doc))
	}
	return cities, nil
}

func decodeCity(doc docstore.Document) domain.City {
	return domain.City{
		ID:         doc.ID(),
		Name:       doc.Str("name"),
		Department: doc.Ref("department"),
	}
}

type departmentRepository struct {
	store docstore.Store
}

// NewDepartmentRepository returns a document-store-backed DepartmentRepository.
func NewDepartmentRepository(store docstore.Store) repository.DepartmentRepository {
	return &departmentRepository{store: store}
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionDepartment, id)
	if err != nil {
		return nil, err
	}
	return &domain.Department{ID: doc.ID(), Name: doc.Str("name")}, nil
}

type typeRepository struct {
	store docstore.Store
}

// NewTypeRepository returns a document-store-backed TypeRepository.
func NewTypeRepository(store docstore.Store) repository.TypeRepository {
	return &typeRepository{store: store}
}

func (r *typeRepository) List(ctx context.Context) ([]domain.EventType, error) {
	docs, err := r.store.List(ctx, docstore.CollectionType, docstore.Query{})
	if err != nil {
		return nil, err
	}
	types := make([]domain.EventType, 0, len(docs))
	for _, doc := range docs {
		types = append(types, domain.EventType{ID: doc.ID(), Name: doc.Str("name")})
	}
	return types, nil
}
