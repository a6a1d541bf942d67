package usecase

import (
	"context"

	"github.com/agora/backend/domain"
)

// Buffered operation kinds.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Writes land here when the document store is
// unreachable and are replayed later.
type OperationBuffer interface {
	BufferEvent(ctx context.Context, operation string, event *domain.Event, photoURLs []string) error
	BufferPayment(ctx context.Context, operation string, payment *domain.Payment) error
	BufferCities(ctx context.Context, operation string, userID string, cityIDs []string) error
}
