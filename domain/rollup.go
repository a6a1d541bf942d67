package domain

import "time"

// RollupReport is the admin dashboard aggregate: totals, the upcoming-event
// share, and independent count maps along the geographic hierarchy. The
// user and event maps are not required to share key sets; absent keys mean
// zero. Each report is recomputed from scratch, never accumulated.
type RollupReport struct {
	TotalUsers         int            `json:"total_users"`
	TotalEvents        int            `json:"total_events"`
	UpcomingPercent    float64        `json:"upcoming_percent"`
	UsersByDepartment  map[string]int `json:"users_by_department"`
	EventsByDepartment map[string]int `json:"events_by_department"`
	UsersByCity        map[string]int `json:"users_by_city"`
	EventsByCity       map[string]int `json:"events_by_city"`
	Users              []UserStats    `json:"users"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

// UserStats is the per-user detail row: home cities grouped by department
// ("city1, city2 (Dept)"), events created, and total money spent.
type UserStats struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Cities     string  `json:"cities"`
	EventCount int     `json:"event_count"`
	MoneySpent float64 `json:"money_spent"`
}
