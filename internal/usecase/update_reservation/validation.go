package update_reservation

import (
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// validateRequest checks the structural fields of the change set.
// Pairing rules are validated later against the merged state, because a
// request may legally change category and room together.
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.Category != nil && !domain.ValidCategory(*req.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
	}
	if req.EndAt != nil && req.ClearEnd {
		return fmt.Errorf("%w: endAt and clearEnd are mutually exclusive", ErrInvalidInput)
	}
	if req.RoomID != nil && req.ClearRoom {
		return fmt.Errorf("%w: roomId and clearRoom are mutually exclusive", ErrInvalidInput)
	}
	if req.Memo != nil && len(*req.Memo) > domain.MaxMemoLength {
		return fmt.Errorf("%w: memo exceeds %d characters", ErrInvalidInput, domain.MaxMemoLength)
	}
	return nil
}

// mergeInterval rebuilds the effective interval from the stored reservation
// overlaid with the requested changes, going through domain.ParseInterval so
// update and create normalize identically.
func mergeInterval(current *domain.Reservation, req *Request) (domain.Interval, error) {
	date := current.StartAt.Format(domain.DateFormat)
	if req.Date != nil {
		date = *req.Date
	}

	startTime := current.StartAt.Format(domain.TimeFormat)
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	var endAt *string
	switch {
	case req.ClearEnd:
		endAt = nil
	case req.EndAt != nil:
		endAt = req.EndAt
	case current.EndAt != nil:
		formatted := current.EndAt.Format(domain.DateTimeFormat)
		endAt = &formatted
	}

	iv, err := domain.ParseInterval(date, startTime, endAt)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	return iv, nil
}

// mergeRoom resolves the room reference after the change set is applied.
func mergeRoom(current *domain.Reservation, req *Request) *int64 {
	switch {
	case req.ClearRoom:
		return nil
	case req.RoomID != nil:
		return req.RoomID
	default:
		return current.RoomID
	}
}

// validateMergedState enforces the category/room/end pairing invariant on the
// state the reservation would have after the update.
func validateMergedState(category domain.ServiceCategory, iv domain.Interval, roomID *int64) error {
	if category == domain.CategoryHotel {
		if roomID == nil {
			return ErrRoomRequired
		}
		if iv.End == nil {
			return ErrEndTimeRequired
		}
		return nil
	}
	if roomID != nil {
		return ErrRoomNotAllowed
	}
	return nil
}
