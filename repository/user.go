package repository

import (
	"context"

	"github.com/agora/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateCities(ctx context.Context, userID string, cityIDs []string) error
}
