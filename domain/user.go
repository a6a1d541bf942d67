package domain

import (
	"strings"

	"github.com/agora/backend/internal/docstore"
)

// User represents an account in the platform. Cities are the user's home
// city memberships (multi-home), stored as references.
type User struct {
	ID        string         `json:"id"`
	Firstname string         `json:"firstname"`
	Lastname  string         `json:"lastname"`
	Email     string         `json:"email"`
	Cities    []docstore.Ref `json:"cities,omitempty"`
	IsAdmin   bool           `json:"is_admin"`
}

// FullName joins the name parts, tolerating either being empty.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}
