package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/agora/backend/api/transport"
	"github.com/agora/backend/domain"
	"github.com/agora/backend/pkg/httpcontext"
	adminUC "github.com/agora/backend/usecase/admin"
)

type AdminHandler struct {
	baseHandler
	uc *adminUC.UseCase
}

func NewAdminHandler(uc *adminUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Aggregated statistics over users, events and payments
// @Tags admin
// @Router /api/v1/admin/rollups [get]
func (h *AdminHandler) Rollups(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.Unauthorized("missing user id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if !h.uc.IsAdmin(stdCtx, userID) {
		h.respondError(ctx, domain.ErrForbidden)
		return
	}

	report, err := h.uc.ComputeRollups(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
