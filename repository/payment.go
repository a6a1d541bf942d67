package repository

import (
	"context"

	"github.com/agora/backend/domain"
)

type PaymentRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

type PhotoRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.Photo, error)
	Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
}
