package get_room_availability

import (
	"strconv"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	getRoomAvailability "github.com/pawdesk/PD-ReservationService/internal/usecase/get_room_availability"
)

// RoomSlotResponse HTTP model for one room's availability.
type RoomSlotResponse struct {
	RoomID     int64  `json:"roomId"`
	Name       string `json:"name"`
	Size       string `json:"size"`
	Available  bool   `json:"available"`
	ConflictID *int64 `json:"conflictId,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StartAt string             `json:"startAt"`
	EndAt   string             `json:"endAt"`
	Rooms   []RoomSlotResponse `json:"rooms"`
}

// ToUseCaseRequest builds the availability probe from query parameters.
func ToUseCaseRequest(
	tenantID int64,
	dateStr string,
	startTimeStr string,
	endAtStr string,
	excludeStr string,
) (*getRoomAvailability.Request, error) {
	req := &getRoomAvailability.Request{
		TenantID:  tenantID,
		Date:      dateStr,
		StartTime: startTimeStr,
	}

	if endAtStr != "" {
		req.EndAt = &endAtStr
	}

	if excludeStr != "" {
		exclude, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeReservationID = &exclude
	}

	return req, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *getRoomAvailability.Response) *AvailabilityResponse {
	rooms := make([]RoomSlotResponse, len(resp.Rooms))
	for i, slot := range resp.Rooms {
		rooms[i] = RoomSlotResponse{
			RoomID:     slot.RoomID,
			Name:       slot.Name,
			Size:       slot.Size,
			Available:  slot.Available,
			ConflictID: slot.ConflictID,
		}
	}

	return &AvailabilityResponse{
		StartAt: resp.Interval.Start.Format(domain.DateTimeFormat),
		EndAt:   resp.Interval.EffectiveEnd().Format(domain.DateTimeFormat),
		Rooms:   rooms,
	}
}
