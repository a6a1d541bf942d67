package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/internal/docstore/memstore"
	"github.com/agora/backend/repository"
	"github.com/agora/backend/repository/document"
)

type recordingBuffer struct {
	events    int
	lastURLs  []string
	lastEvent *domain.Event
}

func (b *recordingBuffer) BufferEvent(ctx context.Context, operation string, event *domain.Event, photoURLs []string) error {
	b.events++
	b.lastEvent = event
	b.lastURLs = photoURLs
	return nil
}

func (b *recordingBuffer) BufferPayment(ctx context.Context, operation string, payment *domain.Payment) error {
	return nil
}

func (b *recordingBuffer) BufferCities(ctx context.Context, operation string, userID string, cityIDs []string) error {
	return nil
}

type downEventRepo struct{}

func (downEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, errors.New("connection refused")
}

func (downEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	return nil, errors.New("connection refused")
}

func (downEventRepo) ListByCreator(ctx context.Context, userID string) ([]domain.Event, error) {
	return nil, errors.New("connection refused")
}

func (downEventRepo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return nil, errors.New("connection refused")
}

var _ repository.EventRepository = downEventRepo{}

func newEventsUseCase(store *memstore.Store, buffer *recordingBuffer) *UseCase {
	return New(
		document.NewEventRepository(store),
		document.NewPhotoRepository(store),
		document.NewCityRepository(store),
		document.NewDepartmentRepository(store),
		document.NewTypeRepository(store),
		buffer,
		nil,
	)
}

func validInput() CreateEventInput {
	return CreateEventInput{
		Name:      "Concert",
		Place:     "Halle Tony Garnier",
		Date:      "24/12/2026",
		TimeOfDay: "21:00",
		CreatorID: "u1",
		CityID:    "c1",
		TypeIDs:   []string{"t1"},
		PhotoURLs: []string{"https://example.com/1.jpg", ""},
	}
}

func TestCreateEventRejectsIncompleteInput(t *testing.T) {
	uc := newEventsUseCase(memstore.New(), &recordingBuffer{})
	ctx := context.Background()

	for name, mutate := range map[string]func(*CreateEventInput){
		"no name":    func(in *CreateEventInput) { in.Name = "" },
		"no city":    func(in *CreateEventInput) { in.CityID = "" },
		"no types":   func(in *CreateEventInput) { in.TypeIDs = nil },
		"no creator": func(in *CreateEventInput) { in.CreatorID = "" },
	} {
		in := validInput()
		mutate(&in)
		if _, err := uc.CreateEvent(ctx, in); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("%s: err = %v, want INVALID", name, err)
		}
	}
}

func TestCreateEventStoresEventAndPhotos(t *testing.T) {
	store := memstore.New()
	uc := newEventsUseCase(store, &recordingBuffer{})
	ctx := context.Background()

	created, err := uc.CreateEvent(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created event has no id")
	}

	want := time.Date(2026, 12, 24, 21, 0, 0, 0, time.UTC)
	if !created.Date.Equal(want) {
		t.Fatalf("Date = %v, want %v", created.Date, want)
	}
	if created.City.ID != "c1" || created.Creator.ID != "u1" {
		t.Fatalf("references = %v / %v", created.City, created.Creator)
	}

	photos, err := document.NewPhotoRepository(store).ListByEvent(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	// The blank URL is dropped, not stored.
	if len(photos) != 1 || photos[0].FileURL != "https://example.com/1.jpg" {
		t.Fatalf("photos = %v, want one stored URL", photos)
	}
}

func TestCreateEventMalformedDateFallsBackToNow(t *testing.T) {
	uc := newEventsUseCase(memstore.New(), &recordingBuffer{})

	in := validInput()
	in.Date = "someday"
	before := time.Now()
	created, err := uc.CreateEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.Date.Before(before) || created.Date.After(time.Now()) {
		t.Fatalf("Date = %v, want a current timestamp", created.Date)
	}
}

func TestCreateEventBuffersOnOutage(t *testing.T) {
	store := memstore.New()
	buffer := &recordingBuffer{}
	uc := New(
		downEventRepo{},
		document.NewPhotoRepository(store),
		document.NewCityRepository(store),
		document.NewDepartmentRepository(store),
		document.NewTypeRepository(store),
		buffer,
		nil,
	)

	event, err := uc.CreateEvent(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v, want buffered success", err)
	}
	if event == nil || buffer.events != 1 {
		t.Fatalf("event = %v, buffered = %d, want one buffered creation", event, buffer.events)
	}
	if len(buffer.lastURLs) != 1 {
		t.Fatalf("buffered URLs = %v, want the non-blank one", buffer.lastURLs)
	}
}

func TestListCitiesResolvedAndSorted(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	must := func(err error) {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.Put(ctx, docstore.CollectionDepartment, "d1", map[string]interface{}{"name": "Rhône"}))
	must(store.Put(ctx, docstore.CollectionCity, "c1", map[string]interface{}{
		"name":       "Villeurbanne",
		"department": docstore.NewRef(docstore.CollectionDepartment, "d1"),
	}))
	must(store.Put(ctx, docstore.CollectionCity, "c2", map[string]interface{}{
		"name":       "Lyon",
		"department": docstore.NewRef(docstore.CollectionDepartment, "missing"),
	}))

	options, err := newEventsUseCase(store, &recordingBuffer{}).ListCities(ctx)
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Name != "Lyon" || options[1].Name != "Villeurbanne" {
		t.Fatalf("options out of name order: %v", options)
	}
	if options[0].DepartmentName != domain.UnknownDepartment {
		t.Fatalf("DepartmentName = %q, want sentinel", options[0].DepartmentName)
	}
	if options[1].DepartmentName != "Rhône" {
		t.Fatalf("DepartmentName = %q, want Rhône", options[1].DepartmentName)
	}
}

func TestListTypesSorted(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	for id, name := range map[string]string{"t1": "Théâtre", "t2": "Concert", "t3": "Expo"} {
		if err := store.Put(ctx, docstore.CollectionType, id, map[string]interface{}{"name": name}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	types, err := newEventsUseCase(store, &recordingBuffer{}).ListTypes(ctx)
	if err != nil {
		t.Fatalf("ListTypes: %v", err)
	}
	want := []string{"Concert", "Expo", "Théâtre"}
	for i, name := range want {
		if types[i].Name != name {
			t.Fatalf("types[%d].Name = %q, want %q", i, types[i].Name, name)
		}
	}
}
