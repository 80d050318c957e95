package reservations

import (
	"context"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	updateReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/update_reservation"
)

// ReservationRepository is the persistence interface for reservations.
type ReservationRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

// UpdateReservationUseCase is the coordinator every status change goes
// through; cancel is a thin wrapper over it.
type UpdateReservationUseCase interface {
	Execute(ctx context.Context, req *updateReservation.Request) (*updateReservation.Response, error)
}

// Logger is the logging interface accepted by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
