package list_rooms

import (
	"context"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

type RoomService interface {
	ListEnabled(ctx context.Context, tenantID int64) ([]*domain.HotelRoom, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
