package domain

import "github.com/agora/backend/internal/docstore"

// Sentinels substituted for unresolvable geographic references. Stable
// strings rather than nulls so presentation layers need no nil checks.
const (
	UnknownCity       = "Inconnue"
	UnknownDepartment = "Inconnu"
)

// City belongs to at most one department.
type City struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Department docstore.Ref `json:"department"`
}

// Department carries a display name only.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventType carries a display name only.
type EventType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CityOption is a city with its department name resolved, as offered by
// selection forms.
type CityOption struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentName string `json:"department_name"`
}
