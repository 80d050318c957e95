package update_reservation

import (
	"context"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// ReservationRepository is the persistence interface for reservations.
// GetByIDForUpdate must take a row-level write lock that lives until the
// surrounding transaction ends.
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	FindConflict(ctx context.Context, tenantID, roomID int64, iv domain.Interval, excludeID *int64) (*int64, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// RoomRepository reads the tenant's room registry.
type RoomRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.HotelRoom, error)
}

// ContractRepository decrements the session ledger. DecrementOneSession is a
// silent no-op (applied=false) when the dog has no qualifying ticket contract.
type ContractRepository interface {
	DecrementOneSession(ctx context.Context, dogID int64, day time.Time) (bool, error)
}

// TransactionManager runs the lock-validate-write sequence atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider returns the current time (swappable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface accepted by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
