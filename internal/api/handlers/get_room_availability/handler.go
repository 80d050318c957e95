package get_room_availability

import (
	"errors"
	"net/http"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	getRoomAvailability "github.com/pawdesk/PD-ReservationService/internal/usecase/get_room_availability"
)

const (
	msgMissingTenantID = "missing tenant ID"
	msgInvalidQuery    = "invalid query parameters"
	msgInvalidInterval = "invalid date or time, expected YYYY-MM-DD and HH:MM"
)

type Handler struct {
	useCase GetRoomAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/availability
// Query parameters: date, startTime, endAt, excludeReservationId.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/availability - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	query := r.URL.Query()
	req, err := ToUseCaseRequest(
		tenantID,
		query.Get("date"),
		query.Get("startTime"),
		query.Get("endAt"),
		query.Get("excludeReservationId"),
	)
	if err != nil {
		h.logger.Warn("GET /rooms/availability - Invalid query parameters: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrInvalidInterval):
			h.logger.Warn("GET /rooms/availability - Invalid interval: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/availability - Invalid input: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /rooms/availability - Failed to get availability: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/availability - Availability computed for %d rooms: tenant_id=%d",
		len(result.Rooms), tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
