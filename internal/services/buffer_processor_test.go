package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/internal/docstore/memstore"
	"github.com/agora/backend/internal/infrastructure/buffer"
	"github.com/agora/backend/repository/document"
)

type fakeHealth struct {
	online bool
}

func (f *fakeHealth) IsOnline() bool { return f.online }

func newTestProcessor(t *testing.T, store *memstore.Store, health ConnectionHealth) *BufferProcessor {
	t.Helper()
	bufStore, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "buffer")
	if err != nil {
		t.Fatalf("open buffer store: %v", err)
	}
	t.Cleanup(func() { bufStore.Close() })

	return NewBufferProcessor(
		bufStore,
		health,
		document.NewEventRepository(store),
		document.NewPhotoRepository(store),
		document.NewPaymentRepository(store),
		document.NewUserRepository(store),
		nil,
		ProcessorConfig{Interval: time.Minute, BatchSize: 10, MaxRetries: 3},
	)
}

func TestBufferedEventReplaysWithPhotos(t *testing.T) {
	store := memstore.New()
	health := &fakeHealth{online: false}
	processor := newTestProcessor(t, store, health)
	bridge := NewBufferBridge(processor)
	ctx := context.Background()

	event := &domain.Event{
		ID:      "e1",
		Name:    "Buffered concert",
		Date:    time.Date(2026, 11, 1, 20, 0, 0, 0, time.UTC),
		Creator: docstore.NewRef(docstore.CollectionUser, "u1"),
		City:    docstore.NewRef(docstore.CollectionCity, "c1"),
	}
	if err := bridge.BufferEvent(ctx, buffer.OperationCreate, event, []string{"https://example.com/1.jpg"}); err != nil {
		t.Fatalf("BufferEvent: %v", err)
	}
	if processor.Size() != 1 {
		t.Fatalf("Size = %d, want 1 while offline", processor.Size())
	}

	health.online = true
	if err := processor.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if processor.Size() != 0 {
		t.Fatalf("Size = %d, want 0 after drain", processor.Size())
	}

	replayed, err := document.NewEventRepository(store).GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if replayed.Name != "Buffered concert" {
		t.Fatalf("Name = %q", replayed.Name)
	}
	photos, err := document.NewPhotoRepository(store).ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("len(photos) = %d, want 1", len(photos))
	}
}

func TestBufferedPaymentAndCitiesReplay(t *testing.T) {
	store := memstore.New()
	health := &fakeHealth{online: false}
	processor := newTestProcessor(t, store, health)
	bridge := NewBufferBridge(processor)
	ctx := context.Background()

	if _, err := document.NewUserRepository(store).Create(ctx, &domain.User{ID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payment := &domain.Payment{
		ID:     "p1",
		Amount: domain.PromotionAmount,
		User:   docstore.NewRef(docstore.CollectionUser, "u1"),
		Event:  docstore.NewRef(docstore.CollectionEvent, "e1"),
	}
	if err := bridge.BufferPayment(ctx, buffer.OperationCreate, payment); err != nil {
		t.Fatalf("BufferPayment: %v", err)
	}
	if err := bridge.BufferCities(ctx, buffer.OperationUpdate, "u1", []string{"c1", "c2"}); err != nil {
		t.Fatalf("BufferCities: %v", err)
	}
	if processor.Size() != 2 {
		t.Fatalf("Size = %d, want 2", processor.Size())
	}

	health.online = true
	if err := processor.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}

	payments, err := document.NewPaymentRepository(store).ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(payments) != 1 || payments[0].Event.ID != "e1" {
		t.Fatalf("payments = %v, want the replayed promotion", payments)
	}

	user, err := document.NewUserRepository(store).GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(user.Cities) != 2 {
		t.Fatalf("Cities = %v, want the replayed memberships", user.Cities)
	}
}

func TestBufferOperationRunsImmediatelyWhenOnline(t *testing.T) {
	store := memstore.New()
	processor := newTestProcessor(t, store, &fakeHealth{online: true})
	bridge := NewBufferBridge(processor)
	ctx := context.Background()

	event := &domain.Event{ID: "e1", Name: "Direct"}
	if err := bridge.BufferEvent(ctx, buffer.OperationCreate, event, nil); err != nil {
		t.Fatalf("BufferEvent: %v", err)
	}
	if processor.Size() != 0 {
		t.Fatalf("Size = %d, want 0 for an immediate write", processor.Size())
	}
	if _, err := document.NewEventRepository(store).GetByID(ctx, "e1"); err != nil {
		t.Fatalf("event was not written through: %v", err)
	}
}
