package services

import (
	"context"
	"encoding/json"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/infrastructure/buffer"
	"github.com/agora/backend/usecase"
)

// bufferedEvent is the replayable form of an event creation: the event
// plus its pending photo URLs.
type bufferedEvent struct {
	Event     domain.Event `json:"event"`
	PhotoURLs []string     `json:"photo_urls,omitempty"`
}

// bufferedCities is the replayable form of a home-city update.
type bufferedCities struct {
	UserID  string   `json:"user_id"`
	CityIDs []string `json:"city_ids"`
}

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferEvent(ctx context.Context, operation string, event *domain.Event, photoURLs []string) error {
	if b.processor == nil || event == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(bufferedEvent{Event: *event, PhotoURLs: photoURLs})
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        event.ID,
		UserID:    event.Creator.ID,
		Entity:    buffer.EntityEvent,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferPayment(ctx context.Context, operation string, payment *domain.Payment) error {
	if b.processor == nil || payment == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(payment)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        payment.ID,
		UserID:    payment.User.ID,
		Entity:    buffer.EntityPayment,
		Operation: operation,
		Data:      payload,
		Priority:  2,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferCities(ctx context.Context, operation string, userID string, cityIDs []string) error {
	if b.processor == nil || userID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(bufferedCities{UserID: userID, CityIDs: cityIDs})
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    userID,
		Entity:    buffer.EntityCities,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
