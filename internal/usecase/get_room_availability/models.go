package get_room_availability

import "github.com/pawdesk/PD-ReservationService/internal/domain"

// Request is a candidate interval to probe room availability for.
// ExcludeReservationID lets a reschedule flow ignore the reservation
// being moved.
type Request struct {
	TenantID             int64
	Date                 string  // "2026-02-10"
	StartTime            string  // "11:00"
	EndAt                *string // "2026-02-12 11:00"
	ExcludeReservationID *int64
}

// RoomSlot is the availability answer for one room.
type RoomSlot struct {
	RoomID     int64
	Name       string
	Size       string
	Available  bool
	ConflictID *int64 // blocking reservation when Available is false
}

// Response lists per-room availability in display order.
type Response struct {
	TenantID int64
	Interval domain.Interval
	Rooms    []RoomSlot
}
