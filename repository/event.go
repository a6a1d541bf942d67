package repository

import (
	"context"

	"github.com/agora/backend/domain"
)

type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByCreator(ctx context.Context, userID string) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
}
