package create_reservation

import (
	"errors"
	"net/http"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
	"github.com/pawdesk/PD-ReservationService/internal/api/middleware"
	createReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/create_reservation"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingTenantID    = "missing tenant ID"
	msgInvalidInput       = "invalid reservation data"
	msgInvalidInterval    = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgRoomRequired       = "hotel reservations require a room"
	msgEndTimeRequired    = "hotel reservations require an end time"
	msgRoomNotAllowed     = "only hotel reservations may specify a room"
	msgForbidden          = "dog does not belong to this tenant"
	msgRoomNotFound       = "room not found"
	msgRoomDisabled       = "room is disabled"
	msgRoomUnavailable    = "room is not available for the requested interval"
	msgCapacityExceeded   = "daily reservation capacity exceeded"
	msgRetryLater         = "could not complete the reservation, please retry"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrRoomRequired):
			h.logger.Warn("POST /reservations - Room required: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondBadRequest(w, msgRoomRequired)

		case errors.Is(err, createReservation.ErrEndTimeRequired):
			h.logger.Warn("POST /reservations - End time required: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondBadRequest(w, msgEndTimeRequired)

		case errors.Is(err, createReservation.ErrRoomNotAllowed):
			h.logger.Warn("POST /reservations - Room not allowed: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondBadRequest(w, msgRoomNotAllowed)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrForbidden):
			h.logger.Warn("POST /reservations - Dog not owned by tenant: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrRoomDisabled):
			h.logger.Warn("POST /reservations - Room disabled: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondError(w, http.StatusConflict, msgRoomDisabled)

		case errors.Is(err, createReservation.ErrRoomUnavailable):
			h.logger.Warn("POST /reservations - Room unavailable: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /reservations - Transaction contention: tenant_id=%d, dog_id=%d", tenantID, req.DogID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRetryLater)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: tenant_id=%d, dog_id=%d, error=%v",
				tenantID, req.DogID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, tenant_id=%d, dog_id=%d",
		result.ID, tenantID, req.DogID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
