// Package admin computes the dashboard rollups: grouped counts along the
// geographic hierarchy and per-user activity, joined at read time from the
// user, event and payment collections.
package admin

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/usecase/catalog"
)

type UseCase struct {
	store    docstore.Store
	resolver *catalog.Resolver
	logger   *zap.Logger
}

func New(store docstore.Store, resolver *catalog.Resolver, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = catalog.NewResolver(store, logger)
	}
	return &UseCase{
		store:    store,
		resolver: resolver,
		logger:   logger,
	}
}

// IsAdmin reports whether the user document carries the admin flag. Any
// failure reads as false.
func (uc *UseCase) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	doc, err := uc.store.Get(ctx, docstore.CollectionUser, userID)
	if err != nil {
		return false
	}
	return doc.Bool("isAdmin")
}

// ComputeRollups scans the user, event and payment collections once each
// and folds them into a fresh report. Nothing is cached between calls.
func (uc *UseCase) ComputeRollups(ctx context.Context) (*domain.RollupReport, error) {
	users, err := uc.store.List(ctx, docstore.CollectionUser, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load users", err)
	}
	events, err := uc.store.List(ctx, docstore.CollectionEvent, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load events", err)
	}
	payments, err := uc.store.List(ctx, docstore.CollectionPayment, docstore.Query{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load payments", err)
	}

	now := time.Now()
	report := &domain.RollupReport{
		TotalUsers:         len(users),
		TotalEvents:        len(events),
		UsersByDepartment:  make(map[string]int),
		EventsByDepartment: make(map[string]int),
		UsersByCity:        make(map[string]int),
		EventsByCity:       make(map[string]int),
		GeneratedAt:        now,
	}

	upcoming := 0
	for _, event := range events {
		if date, ok := event.Time("date"); ok && !date.Before(now) {
			upcoming++
		}
	}
	if report.TotalEvents > 0 {
		report.UpcomingPercent = float64(upcoming) * 100 / float64(report.TotalEvents)
	}

	eventsByCreator := make(map[string]int, len(events))
	for _, event := range events {
		cityName, deptName := uc.eventLocation(ctx, event)
		report.EventsByCity[cityName]++
		report.EventsByDepartment[deptName]++
		if creator := event.Ref("creator"); !creator.IsZero() {
			eventsByCreator[creator.ID]++
		}
	}

	spentByUser := make(map[string]float64, len(payments))
	for _, payment := range payments {
		if user := payment.Ref("user"); !user.IsZero() {
			spentByUser[user.ID] += payment.Float("amount")
		}
	}

	report.Users = make([]domain.UserStats, 0, len(users))
	for _, user := range users {
		cities := uc.resolver.Resolve(ctx, user, []string{"cities"})["cities"]

		cityName, deptName := domain.UnknownCity, domain.UnknownDepartment
		if len(cities) > 0 {
			if name := cities[0].Str("name"); name != "" {
				cityName = name
			}
			deptName = uc.departmentOf(ctx, cities[0])
		}
		report.UsersByCity[cityName]++
		report.UsersByDepartment[deptName]++

		report.Users = append(report.Users, domain.UserStats{
			ID:         user.ID(),
			Name:       strings.TrimSpace(user.Str("firstname") + " " + user.Str("lastname")),
			Email:      user.Str("email"),
			Cities:     uc.formatCitiesByDepartment(ctx, cities),
			EventCount: eventsByCreator[user.ID()],
			MoneySpent: spentByUser[user.ID()],
		})
	}

	sort.SliceStable(report.Users, func(i, j int) bool {
		return report.Users[i].MoneySpent > report.Users[j].MoneySpent
	})

	return report, nil
}

func (uc *UseCase) eventLocation(ctx context.Context, event docstore.Document) (city, department string) {
	city, department = domain.UnknownCity, domain.UnknownDepartment
	resolved := uc.resolver.Resolve(ctx, event, []string{"city", "city.department"})
	if cityDoc, ok := resolved.First("city"); ok {
		if name := cityDoc.Str("name"); name != "" {
			city = name
		}
	}
	if deptDoc, ok := resolved.First("city.department"); ok {
		if name := deptDoc.Str("name"); name != "" {
			department = name
		}
	}
	return city, department
}

func (uc *UseCase) departmentOf(ctx context.Context, cityDoc docstore.Document) string {
	if deptDoc, ok := uc.resolver.Resolve(ctx, cityDoc, []string{"department"}).First("department"); ok {
		if name := deptDoc.Str("name"); name != "" {
			return name
		}
	}
	return domain.UnknownDepartment
}

// formatCitiesByDepartment renders a user's home cities grouped by their
// department, e.g. "Lyon, Villeurbanne (Rhône), Paris (Seine)". Cities in
// the unknown bucket carry no parenthesis. Grouping keeps first-seen
// department order so the output is deterministic.
func (uc *UseCase) formatCitiesByDepartment(ctx context.Context, cities []docstore.Document) string {
	if len(cities) == 0 {
		return domain.UnknownCity
	}

	var order []string
	grouped := make(map[string][]string)
	for _, cityDoc := range cities {
		name := cityDoc.Str("name")
		if name == "" {
			name = domain.UnknownCity
		}
		dept := uc.departmentOf(ctx, cityDoc)
		if _, seen := grouped[dept]; !seen {
			order = append(order, dept)
		}
		grouped[dept] = append(grouped[dept], name)
	}

	parts := make([]string, 0, len(order))
	for _, dept := range order {
		entry := strings.Join(grouped[dept], ", ")
		if dept != domain.UnknownDepartment {
			entry += " (" + dept + ")"
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}
