package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string.
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidDate is returned for an unparseable date string.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// ListReservationsRequest filters the bulk reservation read used by the
// booking UI and the calendar/CSV exporters.
type ListReservationsRequest struct {
	TenantID        int64
	DogID           *int64
	RoomID          *int64
	FromDate        *string // "2026-02-01"
	ToDate          *string // "2026-02-29"
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter converts the request into a repository filter.
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		TenantID:        r.TenantID,
		DogID:           r.DogID,
		RoomID:          r.RoomID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.FromDate != nil {
		from, err := time.ParseInLocation(domain.DateFormat, *r.FromDate, time.Local)
		if err != nil {
			return domain.ReservationsFilter{}, ErrInvalidDate
		}
		filter.StartDate = &from
	}
	if r.ToDate != nil {
		to, err := time.ParseInLocation(domain.DateFormat, *r.ToDate, time.Local)
		if err != nil {
			return domain.ReservationsFilter{}, ErrInvalidDate
		}
		filter.EndDate = &to
	}
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return domain.ReservationsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainStatus validates and converts a status string.
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ReservationResponse is the service-level view of a reservation. Handlers
// serialize it directly.
type ReservationResponse struct {
	ID       int64                  `json:"id"`
	TenantID int64                  `json:"tenantId"`
	DogID    int64                  `json:"dogId"`
	Category domain.ServiceCategory `json:"category"`

	StartAt time.Time  `json:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty"`
	RoomID  *int64     `json:"roomId,omitempty"`

	Status       domain.ReservationStatus `json:"status"`
	CheckedInAt  *time.Time               `json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time               `json:"checkedOutAt,omitempty"`
	CancelledAt  *time.Time               `json:"cancelledAt,omitempty"`

	Memo    *string         `json:"memo,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse is a list of reservations.
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation converts a domain reservation.
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
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

// FromDomainReservationList converts a list of domain reservations.
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(list))
	for i, res := range list {
		out[i] = FromDomainReservation(res)
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}
