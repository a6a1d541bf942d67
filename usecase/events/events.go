// Package events is the write and form-support side of the catalog:
// event creation with its photos, and the city/type pickers.
package events

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/pkg/dates"
	"github.com/agora/backend/repository"
	"github.com/agora/backend/usecase"
)

type UseCase struct {
	events      repository.EventRepository
	photos      repository.PhotoRepository
	cities      repository.CityRepository
	departments repository.DepartmentRepository
	types       repository.TypeRepository
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
}

func New(
	events repository.EventRepository,
	photos repository.PhotoRepository,
	cities repository.CityRepository,
	departments repository.DepartmentRepository,
	types repository.TypeRepository,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		events:      events,
		photos:      photos,
		cities:      cities,
		departments: departments,
		types:       types,
		buffer:      buffer,
		logger:      logger,
	}
}

// CreateEventInput mirrors the add-event form. Date and TimeOfDay come in
// the form layout; malformed values fall back to the current time.
type CreateEventInput struct {
	Name        string
	Description string
	Place       string
	Date        string
	TimeOfDay   string
	CreatorID   string
	CityID      string
	TypeIDs     []string
	PhotoURLs   []string
}

// CreateEvent validates the form, stores the event and one photo document
// per non-blank URL. When the store is down the whole operation is
// buffered for replay.
func (uc *UseCase) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	if input.Name == "" || input.CityID == "" || len(input.TypeIDs) == 0 || input.CreatorID == "" {
		return nil, domain.ErrInvalidPayload
	}

	types := make([]docstore.Ref, 0, len(input.TypeIDs))
	for _, id := range input.TypeIDs {
		types = append(types, docstore.NewRef(docstore.CollectionType, id))
	}

	event := &domain.Event{
		Name:        input.Name,
		Description: input.Description,
		Place:       input.Place,
		Date:        dates.ParseOrNow(input.Date, input.TimeOfDay),
		Creator:     docstore.NewRef(docstore.CollectionUser, input.CreatorID),
		City:        docstore.NewRef(docstore.CollectionCity, input.CityID),
		Types:       types,
	}

	urls := nonBlank(input.PhotoURLs)

	created, err := uc.events.Create(ctx, event)
	if err != nil {
		if uc.shouldBuffer(ctx, event, urls) {
			return event, nil
		}
		return nil, err
	}

	for _, url := range urls {
		photo := &domain.Photo{
			Event:   docstore.NewRef(docstore.CollectionEvent, created.ID),
			FileURL: url,
		}
		if _, err := uc.photos.Create(ctx, photo); err != nil {
			uc.logger.Error("failed to store event photo",
				zap.String("event_id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

// ListCities returns every city with its department name resolved, sorted
// by city name. Unresolvable departments read as the unknown sentinel.
func (uc *UseCase) ListCities(ctx context.Context) ([]domain.CityOption, error) {
	cities, err := uc.cities.List(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load cities", err)
	}

	options := make([]domain.CityOption, 0, len(cities))
	for _, city := range cities {
		deptName := domain.UnknownDepartment
		if !city.Department.IsZero() {
			if dept, err := uc.departments.GetByID(ctx, city.Department.ID); err == nil && dept.Name != "" {
				deptName = dept.Name
			}
		}
		options = append(options, domain.CityOption{
			ID:             city.ID,
			Name:           city.Name,
			DepartmentName: deptName,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

// ListTypes returns the event types sorted by name.
func (uc *UseCase) ListTypes(ctx context.Context) ([]domain.EventType, error) {
	types, err := uc.types.List(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "failed to load types", err)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, event *domain.Event, photoURLs []string) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferEvent(ctx, usecase.OperationCreate, event, photoURLs); err != nil {
		uc.logger.Error("failed to buffer event creation", zap.Error(err))
		return false
	}
	uc.logger.Warn("event creation buffered", zap.String("name", event.Name))
	return true
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
