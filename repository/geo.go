package repository

import (
	"context"

	"github.com/agora/backend/domain"
)

type CityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Department, error)
}

type TypeRepository interface {
	List(ctx context.Context) ([]domain.EventType, error)
}
