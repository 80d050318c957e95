package create_reservation

import (
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// validateRequest checks the structural fields and normalizes the interval.
// Category/room pairing rules:
//   - hotel requires both a room and an explicit end time
//   - daycare and grooming must not carry a room
func validateRequest(req *Request) (domain.Interval, error) {
	if req.TenantID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}
	if req.DogID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: dogID must be positive", ErrInvalidInput)
	}
	if !domain.ValidCategory(req.Category) {
		return domain.Interval{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	if req.Memo != nil && len(*req.Memo) > domain.MaxMemoLength {
		return domain.Interval{}, fmt.Errorf("%w: memo exceeds %d characters", ErrInvalidInput, domain.MaxMemoLength)
	}

	if req.Category == domain.CategoryHotel {
		if req.RoomID == nil {
			return domain.Interval{}, ErrRoomRequired
		}
		if req.EndAt == nil {
			return domain.Interval{}, ErrEndTimeRequired
		}
	} else if req.RoomID != nil {
		return domain.Interval{}, ErrRoomNotAllowed
	}

	iv, err := domain.ParseInterval(req.Date, req.StartTime, req.EndAt)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	return iv, nil
}
