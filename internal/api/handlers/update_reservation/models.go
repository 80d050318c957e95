package update_reservation

import (
	"encoding/json"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	updateReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model. Omitted fields keep the
// current value. ClearEnd/ClearRoom explicitly drop end time and room, since
// a nil pointer alone cannot distinguish "keep" from "remove".
type UpdateReservationRequest struct {
	Status    *string         `json:"status,omitempty"`
	Category  *string         `json:"category,omitempty"`
	Date      *string         `json:"date,omitempty"`      // "2026-02-10"
	StartTime *string         `json:"startTime,omitempty"` // "11:00"
	EndAt     *string         `json:"endAt,omitempty"`     // "2026-02-12 11:00"
	ClearEnd  bool            `json:"clearEnd,omitempty"`
	RoomID    *int64          `json:"roomId,omitempty"`
	ClearRoom bool            `json:"clearRoom,omitempty"`
	Memo      *string         `json:"memo,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64           `json:"id"`
	TenantID      int64           `json:"tenantId"`
	DogID         int64           `json:"dogId"`
	Category      string          `json:"category"`
	StartAt       string          `json:"startAt"`
	EndAt         *string         `json:"endAt,omitempty"`
	RoomID        *int64          `json:"roomId,omitempty"`
	Status        string          `json:"status"`
	CheckedInAt   *string         `json:"checkedInAt,omitempty"`
	CheckedOutAt  *string         `json:"checkedOutAt,omitempty"`
	CancelledAt   *string         `json:"cancelledAt,omitempty"`
	Memo          *string         `json:"memo,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
	LedgerApplied bool            `json:"ledgerApplied"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *UpdateReservationRequest) ToUseCaseRequest(tenantID, reservationID int64) *updateReservation.Request {
	req := &updateReservation.Request{
		TenantID:      tenantID,
		ReservationID: reservationID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndAt:         r.EndAt,
		ClearEnd:      r.ClearEnd,
		RoomID:        r.RoomID,
		ClearRoom:     r.ClearRoom,
		Memo:          r.Memo,
		Details:       r.Details,
	}
	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		req.Status = &status
	}
	if r.Category != nil {
		category := domain.ServiceCategory(*r.Category)
		req.Category = &category
	}
	return req
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateTimeFormat)
	return &s
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		TenantID:      resp.TenantID,
		DogID:         resp.DogID,
		Category:      string(resp.Category),
		StartAt:       resp.StartAt.Format(domain.DateTimeFormat),
		EndAt:         formatTimePtr(resp.EndAt),
		RoomID:        resp.RoomID,
		Status:        string(resp.Status),
		CheckedInAt:   formatTimePtr(resp.CheckedInAt),
		CheckedOutAt:  formatTimePtr(resp.CheckedOutAt),
		CancelledAt:   formatTimePtr(resp.CancelledAt),
		Memo:          resp.Memo,
		Details:       resp.Details,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
		LedgerApplied: resp.LedgerApplied,
	}
}
