package create_reservation

import (
	"encoding/json"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// Request carries the raw booking inputs. Date/time fields stay strings so
// normalization happens in exactly one place (domain.ParseInterval), shared
// with the update path.
type Request struct {
	TenantID  int64
	DogID     int64
	Category  domain.ServiceCategory
	Date      string  // "2026-02-10"
	StartTime string  // "11:00"
	EndAt     *string // "2026-02-12 11:00", mandatory for hotel
	RoomID    *int64  // mandatory for hotel, forbidden otherwise
	Memo      *string
	Details   json.RawMessage // opaque per-category payload
}

// Response is the created reservation.
type Response struct {
	ID       int64
	TenantID int64
	DogID    int64
	Category domain.ServiceCategory

	StartAt time.Time
	EndAt   *time.Time
	RoomID  *int64

	Status       domain.ReservationStatus
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CancelledAt  *time.Time

	Memo    *string
	Details json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain converts a reservation into the use case response.
func FromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:           res.ID,
		TenantID:     res.TenantID,
		DogID:        res.DogID,
		Category:     res.Category,
		StartAt:      res.StartAt,
		EndAt:        res.EndAt,
		RoomID:       res.RoomID,
		Status:       res.Status,
		CheckedInAt:  res.CheckedInAt,
		CheckedOutAt: res.CheckedOutAt,
		CancelledAt:  res.CancelledAt,
		Memo:         res.Memo,
		Details:      res.Details,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}
}
