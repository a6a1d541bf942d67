// Package catalog is the read side of the event catalog: it resolves
// cross-collection references into denormalized views, derives promotion
// from the payment ledger, and filters and ranks the result. It owns no
// state; every call works on a fresh snapshot of the store.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
)

type UseCase struct {
	store     docstore.Store
	assembler *Assembler
	logger    *zap.Logger
}

func New(store docstore.Store, cfg AssemblerConfig, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := NewResolver(store, logger)
	return &UseCase{
		store:     store,
		assembler: NewAssembler(store, resolver, cfg, logger),
		logger:    logger,
	}
}

// Resolver exposes the reference resolver for pipelines that share it.
func (uc *UseCase) Resolver() *Resolver {
	return uc.assembler.resolver
}

// Load fetches and assembles the full catalog, annotates promotion and
// returns the ranked, unfiltered snapshot. A whole-collection fetch
// failure is the only error surfaced; there is no partial result.
func (uc *UseCase) Load(ctx context.Context) ([]domain.EventView, error) {
	docs, err := uc.store.List(ctx, docstore.CollectionEvent, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load events", err)
	}

	views := uc.assembler.AssembleEvents(ctx, docs)

	payments, err := uc.store.List(ctx, docstore.CollectionPayment, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load payments", err)
	}

	uc.logger.Debug("catalog loaded", zap.Int("events", len(views)), zap.Int("payments", len(payments)))
	return Rank(AnnotatePromotions(views, payments)), nil
}

// RefreshPromotions re-derives the promotion flags of an already assembled
// snapshot by re-fetching only the payment ledger. City, department and
// type resolution is not repeated.
func (uc *UseCase) RefreshPromotions(ctx context.Context, views []domain.EventView) ([]domain.EventView, error) {
	payments, err := uc.store.List(ctx, docstore.CollectionPayment, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load payments", err)
	}
	return Rank(AnnotatePromotions(views, payments)), nil
}

// PromotedEventIDs lists the ids the payment ledger currently promotes.
func (uc *UseCase) PromotedEventIDs(ctx context.Context) ([]string, error) {
	payments, err := uc.store.List(ctx, docstore.CollectionPayment, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load payments", err)
	}

	seen := make(map[string]struct{}, len(payments))
	var ids []string
	for _, payment := range payments {
		ref := payment.Ref("event")
		if ref.IsZero() {
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

// EventPhotos returns the photo URLs of one event, placeholder included
// when the event has none.
func (uc *UseCase) EventPhotos(ctx context.Context, eventID string) ([]string, error) {
	return uc.assembler.EventPhotos(ctx, eventID)
}
