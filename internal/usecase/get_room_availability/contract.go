package get_room_availability

import (
	"context"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// ReservationRepository answers conflict queries.
type ReservationRepository interface {
	FindConflict(ctx context.Context, tenantID, roomID int64, iv domain.Interval, excludeID *int64) (*int64, error)
}

// RoomRepository reads the tenant's room registry.
type RoomRepository interface {
	ListEnabled(ctx context.Context, tenantID int64) ([]*domain.HotelRoom, error)
}

// Logger is the logging interface accepted by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
