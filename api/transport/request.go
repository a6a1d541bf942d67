package transport

type RegisterRequest struct {
	UserID    string   `json:"user_id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Cities    []string `json:"cities"`
}

type LoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type EventCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Place       string   `json:"place"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	CityID      string   `json:"city_id"`
	TypeIDs     []string `json:"type_ids"`
	PhotoURLs   []string `json:"photo_urls"`
}

type CitiesUpdateRequest struct {
	Cities []string `json:"cities"`
}
