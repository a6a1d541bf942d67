package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/agora/backend/api/transport"
	"github.com/agora/backend/pkg/httpcontext"
	"github.com/agora/backend/usecase/catalog"
	eventsUC "github.com/agora/backend/usecase/events"
)

type EventHandler struct {
	baseHandler
	catalog *catalog.UseCase
	events  *eventsUC.UseCase
}

func NewEventHandler(cat *catalog.UseCase, ev *eventsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, logger),
		catalog:     cat,
		events:      ev,
	}
}

// @Summary List events, promoted first then by date
// @Tags events
// @Router /api/v1/events [get]
func (h *EventHandler) List(ctx *fasthttp.RequestCtx) {
	criteria := catalog.Criteria{
		Type:   string(ctx.QueryArgs().Peek("type")),
		Cities: splitCSV(string(ctx.QueryArgs().Peek("cities"))),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	views, err := h.catalog.Load(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, catalog.Filter(views, criteria))
}

// @Summary Create an event
// @Tags events
// @Router /api/v1/events [post]
func (h *EventHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.EventCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Invalid("invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	event, err := h.events.CreateEvent(stdCtx, eventsUC.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		Place:       req.Place,
		Date:        req.Date,
		TimeOfDay:   req.Time,
		CreatorID:   userID,
		CityID:      req.CityID,
		TypeIDs:     req.TypeIDs,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, event)
}

// @Summary Photos of an event
// @Tags events
// @Router /api/v1/events/{id}/photos [get]
func (h *EventHandler) Photos(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Invalid("missing event id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	urls, err := h.catalog.EventPhotos(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"urls": urls})
}

// @Summary IDs of currently promoted events
// @Tags events
// @Router /api/v1/events/promoted [get]
func (h *EventHandler) Promoted(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ids, err := h.catalog.PromotedEventIDs(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"ids": ids})
}

// @Summary City picker entries
// @Tags events
// @Router /api/v1/cities [get]
func (h *EventHandler) Cities(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	cities, err := h.events.ListCities(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, cities)
}

// @Summary Type picker entries
// @Tags events
// @Router /api/v1/types [get]
func (h *EventHandler) Types(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	types, err := h.events.ListTypes(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, types)
}

func (h *EventHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.Unauthorized("missing user id"))
	}
	return userID
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
