package list_reservations

import (
	"strconv"

	"github.com/pawdesk/PD-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest builds the list filter from query parameters.
func ToServiceRequest(
	tenantID int64,
	dogIDStr string,
	roomIDStr string,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		TenantID: tenantID,
	}

	if dogIDStr != "" {
		dogID, err := strconv.ParseInt(dogIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.DogID = &dogID
	}

	if roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.RoomID = &roomID
	}

	if fromStr != "" {
		req.FromDate = &fromStr
	}
	if toStr != "" {
		req.ToDate = &toStr
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
