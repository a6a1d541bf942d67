// Package profile serves the account screen: the user's own events with
// their promotion state, home-city management, and event highlighting.
package profile

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
	"github.com/agora/backend/usecase"
)

type UseCase struct {
	users    repository.UserRepository
	events   repository.EventRepository
	payments repository.PaymentRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	events repository.EventRepository,
	payments repository.PaymentRepository,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		events:   events,
		payments: payments,
		buffer:   buffer,
		logger:   logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UserEvents lists the events the user created, newest first, each marked
// highlighted when one of the user's payments references it.
func (uc *UseCase) UserEvents(ctx context.Context, userID string) ([]domain.UserEvent, error) {
	events, err := uc.events.ListByCreator(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load user events", err)
	}
	payments, err := uc.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load user payments", err)
	}

	highlighted := make(map[string]struct{}, len(payments))
	for _, payment := range payments {
		if !payment.Event.IsZero() {
			highlighted[payment.Event.ID] = struct{}{}
		}
	}

	out := make([]domain.UserEvent, 0, len(events))
	for _, event := range events {
		_, isHighlighted := highlighted[event.ID]
		out = append(out, domain.UserEvent{
			ID:          event.ID,
			Name:        event.Name,
			Place:       event.Place,
			Date:        event.Date,
			Highlighted: isHighlighted,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// UpdateCities replaces the user's home-city memberships, buffering the
// write when the store is unreachable.
func (uc *UseCase) UpdateCities(ctx context.Context, userID string, cityIDs []string) error {
	if userID == "" {
		return domain.ErrInvalidPayload
	}
	if err := uc.users.UpdateCities(ctx, userID, cityIDs); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferCities(ctx, usecase.OperationUpdate, userID, cityIDs); bufErr == nil {
				uc.logger.Warn("city update buffered", zap.String("user_id", userID))
				return nil
			}
		}
		return err
	}
	return nil
}

// HighlightEvent records the flat promotion payment for one of the user's
// events. Promotion is derived downstream from the ledger, never stored on
// the event itself.
func (uc *UseCase) HighlightEvent(ctx context.Context, userID, eventID string) (*domain.Payment, error) {
	if userID == "" || eventID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		Amount: domain.PromotionAmount,
		User:   docstore.NewRef(docstore.CollectionUser, userID),
		Event:  docstore.NewRef(docstore.CollectionEvent, eventID),
	}
	created, err := uc.payments.Create(ctx, payment)
	if err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferPayment(ctx, usecase.OperationCreate, payment); bufErr == nil {
				uc.logger.Warn("promotion payment buffered",
					zap.String("user_id", userID), zap.String("event_id", eventID))
				return payment, nil
			}
		}
		return nil, err
	}
	return created, nil
}
