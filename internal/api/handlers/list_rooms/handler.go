package list_rooms

import (
	"net/http"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
)

const msgMissingTenantID = "missing tenant ID"

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	rooms, err := h.service.ListEnabled(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Retrieved %d rooms: tenant_id=%d", len(rooms), tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainRooms(rooms))
}
