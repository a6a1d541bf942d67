package admin

import (
	"context"
	"testing"
	"time"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/internal/docstore/memstore"
	"github.com/agora/backend/usecase/catalog"
)

func newRollupUseCase(store *memstore.Store) *UseCase {
	return New(store, catalog.NewResolver(store, nil), nil)
}

func seedGeo(t *testing.T, store *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.Put(ctx, docstore.CollectionDepartment, "d1", map[string]interface{}{"name": "Rhône"}))
	must(store.Put(ctx, docstore.CollectionDepartment, "d2", map[string]interface{}{"name": "Seine"}))
	must(store.Put(ctx, docstore.CollectionCity, "c1", map[string]interface{}{
		"name":       "Lyon",
		"department": docstore.NewRef(docstore.CollectionDepartment, "d1"),
	}))
	must(store.Put(ctx, docstore.CollectionCity, "c2", map[string]interface{}{
		"name":       "Villeurbanne",
		"department": docstore.NewRef(docstore.CollectionDepartment, "d1"),
	}))
	must(store.Put(ctx, docstore.CollectionCity, "c3", map[string]interface{}{
		"name":       "Paris",
		"department": docstore.NewRef(docstore.CollectionDepartment, "d2"),
	}))
}

func TestComputeRollupsOnEmptyStore(t *testing.T) {
	store := memstore.New()
	uc := newRollupUseCase(store)

	report, err := uc.ComputeRollups(context.Background())
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}
	if report.TotalUsers != 0 || report.TotalEvents != 0 {
		t.Fatalf("totals = %d/%d, want 0/0", report.TotalUsers, report.TotalEvents)
	}
	if report.UpcomingPercent != 0 {
		t.Fatalf("UpcomingPercent = %v, want 0 without events", report.UpcomingPercent)
	}
}

func TestComputeRollupsCountsAndPercent(t *testing.T) {
	store := memstore.New()
	seedGeo(t, store)
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	must(store.Put(ctx, docstore.CollectionEvent, "e1", map[string]interface{}{
		"name":    "past",
		"date":    past,
		"city":    docstore.NewRef(docstore.CollectionCity, "c1"),
		"creator": docstore.NewRef(docstore.CollectionUser, "u1"),
	}))
	must(store.Put(ctx, docstore.CollectionEvent, "e2", map[string]interface{}{
		"name":    "upcoming",
		"date":    future,
		"city":    docstore.NewRef(docstore.CollectionCity, "c3"),
		"creator": docstore.NewRef(docstore.CollectionUser, "u1"),
	}))
	must(store.Put(ctx, docstore.CollectionUser, "u1", map[string]interface{}{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     "ada@example.com",
		"cities":    []docstore.Ref{docstore.NewRef(docstore.CollectionCity, "c1")},
	}))

	report, err := newRollupUseCase(store).ComputeRollups(ctx)
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}

	if report.TotalUsers != 1 || report.TotalEvents != 2 {
		t.Fatalf("totals = %d/%d, want 1/2", report.TotalUsers, report.TotalEvents)
	}
	if report.UpcomingPercent != 50 {
		t.Fatalf("UpcomingPercent = %v, want 50", report.UpcomingPercent)
	}
	if report.EventsByCity["Lyon"] != 1 || report.EventsByCity["Paris"] != 1 {
		t.Fatalf("EventsByCity = %v", report.EventsByCity)
	}
	if report.EventsByDepartment["Rhône"] != 1 || report.EventsByDepartment["Seine"] != 1 {
		t.Fatalf("EventsByDepartment = %v", report.EventsByDepartment)
	}
	if report.UsersByCity["Lyon"] != 1 || report.UsersByDepartment["Rhône"] != 1 {
		t.Fatalf("user maps = %v / %v", report.UsersByCity, report.UsersByDepartment)
	}

	if len(report.Users) != 1 {
		t.Fatalf("len(Users) = %d, want 1", len(report.Users))
	}
	row := report.Users[0]
	if row.Name != "Ada Lovelace" || row.EventCount != 2 {
		t.Fatalf("row = %+v, want Ada Lovelace with 2 events", row)
	}
	if row.Cities != "Lyon (Rhône)" {
		t.Fatalf("Cities = %q, want %q", row.Cities, "Lyon (Rhône)")
	}
}

func TestComputeRollupsBucketsUnresolvedLocations(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.Put(ctx, docstore.CollectionEvent, "e1", map[string]interface{}{
		"name": "nowhere",
		"city": docstore.NewRef(docstore.CollectionCity, "missing"),
	}))
	must(store.Put(ctx, docstore.CollectionUser, "u1", map[string]interface{}{
		"firstname": "Grace",
		"email":     "grace@example.com",
	}))

	report, err := newRollupUseCase(store).ComputeRollups(ctx)
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}
	if report.EventsByCity[domain.UnknownCity] != 1 {
		t.Fatalf("EventsByCity = %v, want one %q entry", report.EventsByCity, domain.UnknownCity)
	}
	if report.EventsByDepartment[domain.UnknownDepartment] != 1 {
		t.Fatalf("EventsByDepartment = %v", report.EventsByDepartment)
	}
	if report.UsersByCity[domain.UnknownCity] != 1 {
		t.Fatalf("UsersByCity = %v", report.UsersByCity)
	}
	if report.Users[0].Cities != domain.UnknownCity {
		t.Fatalf("Cities = %q, want %q", report.Users[0].Cities, domain.UnknownCity)
	}
}

func TestComputeRollupsCountsMultiHomeUserOnce(t *testing.T) {
	store := memstore.New()
	seedGeo(t, store)
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// u1 homes in two Rhône cities and must count once, under Rhône.
	must(store.Put(ctx, docstore.CollectionUser, "u1", map[string]interface{}{
		"firstname": "Ada",
		"cities": []docstore.Ref{
			docstore.NewRef(docstore.CollectionCity, "c1"),
			docstore.NewRef(docstore.CollectionCity, "c2"),
		},
	}))
	must(store.Put(ctx, docstore.CollectionUser, "u2", map[string]interface{}{
		"firstname": "Grace",
		"cities":    []docstore.Ref{docstore.NewRef(docstore.CollectionCity, "c3")},
	}))
	for id, cityID := range map[string]string{"e1": "c1", "e2": "c2", "e3": "c3"} {
		must(store.Put(ctx, docstore.CollectionEvent, id, map[string]interface{}{
			"name": "event " + id,
			"city": docstore.NewRef(docstore.CollectionCity, cityID),
		}))
	}

	report, err := newRollupUseCase(store).ComputeRollups(ctx)
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}

	if len(report.UsersByDepartment) != 2 {
		t.Fatalf("UsersByDepartment = %v, want exactly two departments", report.UsersByDepartment)
	}
	if report.UsersByDepartment["Rhône"] != 1 || report.UsersByDepartment["Seine"] != 1 {
		t.Fatalf("UsersByDepartment = %v, want Rhône:1 Seine:1", report.UsersByDepartment)
	}
	if report.EventsByDepartment["Rhône"] != 2 || report.EventsByDepartment["Seine"] != 1 {
		t.Fatalf("EventsByDepartment = %v, want Rhône:2 Seine:1", report.EventsByDepartment)
	}
}

func TestComputeRollupsGroupsCitiesByDepartment(t *testing.T) {
	store := memstore.New()
	seedGeo(t, store)
	ctx := context.Background()
	if err := store.Put(ctx, docstore.CollectionUser, "u1", map[string]interface{}{
		"firstname": "Ada",
		"cities": []docstore.Ref{
			docstore.NewRef(docstore.CollectionCity, "c1"),
			docstore.NewRef(docstore.CollectionCity, "c2"),
			docstore.NewRef(docstore.CollectionCity, "c3"),
		},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := newRollupUseCase(store).ComputeRollups(ctx)
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}
	want := "Lyon, Villeurbanne (Rhône), Paris (Seine)"
	if report.Users[0].Cities != want {
		t.Fatalf("Cities = %q, want %q", report.Users[0].Cities, want)
	}
}

func TestComputeRollupsSortsUsersByMoneySpent(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.Put(ctx, docstore.CollectionUser, "u1", map[string]interface{}{"firstname": "Frugal"}))
	must(store.Put(ctx, docstore.CollectionUser, "u2", map[string]interface{}{"firstname": "Spender"}))
	must(store.Put(ctx, docstore.CollectionPayment, "p1", map[string]interface{}{
		"amount": domain.PromotionAmount,
		"user":   docstore.NewRef(docstore.CollectionUser, "u2"),
		"event":  docstore.NewRef(docstore.CollectionEvent, "e1"),
	}))
	must(store.Put(ctx, docstore.CollectionPayment, "p2", map[string]interface{}{
		"amount": domain.PromotionAmount,
		"user":   docstore.NewRef(docstore.CollectionUser, "u2"),
		"event":  docstore.NewRef(docstore.CollectionEvent, "e2"),
	}))

	report, err := newRollupUseCase(store).ComputeRollups(ctx)
	if err != nil {
		t.Fatalf("ComputeRollups: %v", err)
	}
	if report.Users[0].ID != "u2" {
		t.Fatalf("Users[0].ID = %q, want the bigger spender first", report.Users[0].ID)
	}
	if report.Users[0].MoneySpent != 2*domain.PromotionAmount {
		t.Fatalf("MoneySpent = %v, want %v", report.Users[0].MoneySpent, 2*domain.PromotionAmount)
	}
}

func TestIsAdmin(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.Put(ctx, docstore.CollectionUser, "admin", map[string]interface{}{"isAdmin": true}))
	must(store.Put(ctx, docstore.CollectionUser, "mortal", map[string]interface{}{"isAdmin": false}))

	uc := newRollupUseCase(store)
	if !uc.IsAdmin(ctx, "admin") {
		t.Fatalf("IsAdmin(admin) = false, want true")
	}
	if uc.IsAdmin(ctx, "mortal") {
		t.Fatalf("IsAdmin(mortal) = true, want false")
	}
	if uc.IsAdmin(ctx, "missing") {
		t.Fatalf("IsAdmin(missing) = true, want false on lookup failure")
	}
}
