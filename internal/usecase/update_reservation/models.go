package update_reservation

import (
	"encoding/json"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// Request identifies the reservation and the requested changes.
// Nil fields keep the current value. Date/StartTime/EndAt stay strings so
// the merged state goes through the same normalization as creation.
type Request struct {
	TenantID      int64
	ReservationID int64

	Status    *domain.ReservationStatus
	Category  *domain.ServiceCategory
	Date      *string // "2026-02-10"
	StartTime *string // "11:00"
	EndAt     *string // "2026-02-12 11:00"
	ClearEnd  bool    // drop the end time (category change away from hotel)
	RoomID    *int64
	ClearRoom bool // drop the room assignment
	Memo      *string
	Details   json.RawMessage
}

// Response is the reservation after the update, with the ledger outcome.
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

	// LedgerApplied is true when this update consumed one contract session.
	LedgerApplied bool
}

// FromDomain converts a reservation into the use case response.
func FromDomain(res *domain.Reservation, ledgerApplied bool) *Response {
	return &Response{
		ID:            res.ID,
		TenantID:      res.TenantID,
		DogID:         res.DogID,
		Category:      res.Category,
		StartAt:       res.StartAt,
		EndAt:         res.EndAt,
		RoomID:        res.RoomID,
		Status:        res.Status,
		CheckedInAt:   res.CheckedInAt,
		CheckedOutAt:  res.CheckedOutAt,
		CancelledAt:   res.CancelledAt,
		Memo:          res.Memo,
		Details:       res.Details,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
		LedgerApplied: ledgerApplied,
	}
}
