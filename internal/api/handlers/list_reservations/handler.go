package list_reservations

import (
	"errors"
	"net/http"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	"github.com/pawdesk/PD-ReservationService/internal/service/reservations"
)

const (
	msgMissingTenantID = "missing tenant ID"
	msgInvalidQuery    = "invalid query parameters"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query parameters: dogId, roomId, from, to, status, includeInactive.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	query := r.URL.Query()
	req, err := ToServiceRequest(
		tenantID,
		query.Get("dogId"),
		query.Get("roomId"),
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query parameters: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Retrieved %d reservations: tenant_id=%d", result.Total, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
