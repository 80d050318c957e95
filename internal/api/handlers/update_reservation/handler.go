package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	updateReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/update_reservation"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgInvalidRequestBody   = "invalid request body"
	msgMissingTenantID      = "missing tenant ID"
	msgInvalidInput         = "invalid reservation data"
	msgInvalidInterval      = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgNotFound             = "reservation not found"
	msgRoomRequired         = "hotel reservations require a room"
	msgEndTimeRequired      = "hotel reservations require an end time"
	msgRoomNotAllowed       = "only hotel reservations may specify a room"
	msgRoomNotFound         = "room not found"
	msgRoomDisabled         = "room is disabled"
	msgRoomUnavailable      = "room is not available for the requested interval"
	msgInvalidTransition    = "status transition is not allowed"
	msgRetryLater           = "could not complete the update, please retry"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, reservationID))
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrInvalidInterval):
			h.logger.Warn("PATCH /reservations/{id} - Invalid interval: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, updateReservation.ErrRoomRequired):
			h.logger.Warn("PATCH /reservations/{id} - Room required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgRoomRequired)

		case errors.Is(err, updateReservation.ErrEndTimeRequired):
			h.logger.Warn("PATCH /reservations/{id} - End time required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgEndTimeRequired)

		case errors.Is(err, updateReservation.ErrRoomNotAllowed):
			h.logger.Warn("PATCH /reservations/{id} - Room not allowed: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgRoomNotAllowed)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateReservation.ErrRoomNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Room not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, updateReservation.ErrRoomDisabled):
			h.logger.Warn("PATCH /reservations/{id} - Room disabled: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgRoomDisabled)

		case errors.Is(err, updateReservation.ErrRoomUnavailable):
			h.logger.Warn("PATCH /reservations/{id} - Room unavailable: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		case errors.Is(err, updateReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id} - Invalid status transition: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id} - Transaction contention: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRetryLater)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%d, tenant_id=%d, ledger_applied=%t",
		reservationID, tenantID, result.LedgerApplied)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
