package create_reservation

import (
	"encoding/json"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	createReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	DogID     int64           `json:"dogId"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`            // "2026-02-10"
	StartTime string          `json:"startTime"`       // "11:00"
	EndAt     *string         `json:"endAt,omitempty"` // "2026-02-12 11:00"
	RoomID    *int64          `json:"roomId,omitempty"`
	Memo      *string         `json:"memo,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64           `json:"id"`
	TenantID     int64           `json:"tenantId"`
	DogID        int64           `json:"dogId"`
	Category     string          `json:"category"`
	StartAt      string          `json:"startAt"`
	EndAt        *string         `json:"endAt,omitempty"`
	RoomID       *int64          `json:"roomId,omitempty"`
	Status       string          `json:"status"`
	CheckedInAt  *string         `json:"checkedInAt,omitempty"`
	CheckedOutAt *string         `json:"checkedOutAt,omitempty"`
	CancelledAt  *string         `json:"cancelledAt,omitempty"`
	Memo         *string         `json:"memo,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model. Date
// and time strings pass through untouched, parsing happens in the use case.
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID int64) *createReservation.Request {
	return &createReservation.Request{
		TenantID:  tenantID,
		DogID:     r.DogID,
		Category:  domain.ServiceCategory(r.Category),
		Date:      r.Date,
		StartTime: r.StartTime,
		EndAt:     r.EndAt,
		RoomID:    r.RoomID,
		Memo:      r.Memo,
		Details:   r.Details,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateTimeFormat)
	return &s
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		TenantID:     resp.TenantID,
		DogID:        resp.DogID,
		Category:     string(resp.Category),
		StartAt:      resp.StartAt.Format(domain.DateTimeFormat),
		EndAt:        formatTimePtr(resp.EndAt),
		RoomID:       resp.RoomID,
		Status:       string(resp.Status),
		CheckedInAt:  formatTimePtr(resp.CheckedInAt),
		CheckedOutAt: formatTimePtr(resp.CheckedOutAt),
		CancelledAt:  formatTimePtr(resp.CancelledAt),
		Memo:         resp.Memo,
		Details:      resp.Details,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
