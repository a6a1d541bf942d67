package domain

import (
	"time"

	"github.com/agora/backend/internal/docstore"
)

// Event is the raw catalog entry as stored: scalar fields plus references
// into the city, type and user collections.
type Event struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Place       string         `json:"place,omitempty"`
	Date        time.Time      `json:"date"`
	Creator     docstore.Ref   `json:"creator"`
	City        docstore.Ref   `json:"city"`
	Types       []docstore.Ref `json:"types,omitempty"`
}

// EventView is the denormalized event produced by the aggregation engine:
// references resolved to display names, promotion derived from payments.
// Views are immutable snapshots; a refresh returns a fresh slice.
type EventView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Place          string    `json:"place"`
	Date           time.Time `json:"date"`
	CityName       string    `json:"city_name"`
	DepartmentName string    `json:"department_name"`
	Types          []string  `json:"types"`
	ImageURL       string    `json:"image_url"`
	Promoted       bool      `json:"promoted"`
}

// UserEvent is the creator-facing row of an event: what the profile screen
// shows for "my events", with the promotion state of each.
type UserEvent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Place       string    `json:"place"`
	Date        time.Time `json:"date"`
	Highlighted bool      `json:"highlighted"`
}
