package catalog

import (
	"sort"

	"github.com/agora/backend/domain"
)

// Criteria is a conjunction of optional predicates. A zero value matches
// everything: unset type and empty city set mean "no filtering", never
// "match nothing".
type Criteria struct {
	Type   string
	Cities []string
}

// Filter applies the criteria and returns the result fully ranked. The
// whole list is recomputed each call; the catalog is bounded, so there is
// no incremental path.
func Filter(views []domain.EventView, criteria Criteria) []domain.EventView {
	cities := make(map[string]struct{}, len(criteria.Cities))
	for _, city := range criteria.Cities {
		cities[city] = struct{}{}
	}

	out := make([]domain.EventView, 0, len(views))
	for _, view := range views {
		if criteria.Type != "" && !containsType(view.Types, criteria.Type) {
			continue
		}
		if len(cities) > 0 {
			if _, ok := cities[view.CityName]; !ok {
				continue
			}
		}
		out = append(out, view)
	}
	return Rank(out)
}

// Rank imposes the deterministic total order of the catalog: promoted
// events first, chronological within each tier. The sort is stable, so
// equal entries keep their input order.
func Rank(views []domain.EventView) []domain.EventView {
	out := make([]domain.EventView, len(views))
	copy(out, views)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Promoted != out[j].Promoted {
			return out[i].Promoted
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
