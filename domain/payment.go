package domain

import "github.com/agora/backend/internal/docstore"

// PromotionAmount is the flat price of highlighting an event.
const PromotionAmount = 5.0

// Payment is a ledger entry. Read against its event reference it marks a
// promotion purchase; read against its user reference it is a spend record.
type Payment struct {
	ID     string       `json:"id"`
	Amount float64      `json:"amount"`
	User   docstore.Ref `json:"user"`
	Event  docstore.Ref `json:"event"`
}

// Photo references exactly one event; events discover their photos by
// reverse lookup.
type Photo struct {
	ID      string       `json:"id"`
	Event   docstore.Ref `json:"event"`
	FileURL string       `json:"file_url"`
}
