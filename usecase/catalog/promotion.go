package catalog

import (
	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
)

// AnnotatePromotions marks each view whose event at least one payment
// references. Set membership, not a count: several payments for the same
// event still mean one promoted flag. Pure and idempotent; the input slice
// is left untouched.
func AnnotatePromotions(views []domain.EventView, payments []docstore.Document) []domain.EventView {
	promoted := make(map[string]struct{}, len(payments))
	for _, payment := range payments {
		if ref := payment.Ref("event"); !ref.IsZero() {
			promoted[ref.ID] = struct{}{}
		}
	}

	out := make([]domain.EventView, len(views))
	for i, view := range views {
		_, view.Promoted = promoted[view.ID]
		out[i] = view
	}
	return out
}
