package create_reservation

import (
	"context"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// ReservationRepository is the persistence interface for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindConflict(ctx context.Context, tenantID, roomID int64, iv domain.Interval, excludeID *int64) (*int64, error)
	CountOnDate(ctx context.Context, tenantID int64, date time.Time) (int, error)
}

// RoomRepository reads the tenant's room registry.
type RoomRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.HotelRoom, error)
}

// DirectoryClient verifies dog ownership.
type DirectoryClient interface {
	BelongsToTenant(ctx context.Context, dogID, tenantID int64) (bool, error)
}

// TransactionManager runs the lock-validate-write sequence atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface accepted by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
