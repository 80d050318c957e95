package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	"github.com/pawdesk/PD-ReservationService/internal/service/reservations"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgMissingTenantID      = "missing tenant ID"
	msgNotFound             = "reservation not found"
	msgCannotCancel         = "reservation cannot be cancelled"
	msgRetryLater           = "could not complete the cancellation, please retry"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	reservation, err := h.service.Cancel(r.Context(), tenantID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Transaction contention: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRetryLater)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, tenant_id=%d",
		reservationID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
