package domain

import (
	"encoding/json"
	"time"
)

// ReservationStatus represents the lifecycle status of a reservation.
type ReservationStatus string

const (
	StatusScheduled  ReservationStatus = "scheduled"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

// ServiceCategory distinguishes the kinds of visits the business offers.
type ServiceCategory string

const (
	CategoryDaycare  ServiceCategory = "daycare"
	CategoryGrooming ServiceCategory = "grooming"
	CategoryHotel    ServiceCategory = "hotel"
)

// ValidCategory reports whether c is one of the known service categories.
func ValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryDaycare, CategoryGrooming, CategoryHotel:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known reservation statuses.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusScheduled, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Reservation represents a booked visit of a dog at the business premises.
// Details is an opaque per-category payload; the core stores and returns it
// without ever interpreting it.
type Reservation struct {
	ID       int64
	TenantID int64
	DogID    int64
	Category ServiceCategory

	StartAt time.Time
	EndAt   *time.Time // mandatory for hotel, absent otherwise
	RoomID  *int64     // present only for hotel

	Status       ReservationStatus
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CancelledAt  *time.Time

	Memo    *string
	Details json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the reservation still occupies its interval.
// Cancelled reservations release their room immediately.
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsTerminal returns true when no further status transition is allowed.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCheckedOut || r.Status == StatusCancelled
}

// Interval returns the effective occupancy interval of the reservation.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartAt, End: r.EndAt}
}

// ReservationsFilter narrows bulk reservation reads.
// StartDate/EndDate bound the reservation start date (inclusive).
type ReservationsFilter struct {
	TenantID        int64
	DogID           *int64
	RoomID          *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeInactive bool
}
