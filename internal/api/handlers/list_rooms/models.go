package list_rooms

import "github.com/pawdesk/PD-ReservationService/internal/domain"

// RoomResponse HTTP model for one room.
type RoomResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	SortOrder int    `json:"sortOrder"`
}

// RoomListResponse HTTP response model
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// FromDomainRooms converts domain rooms into the HTTP response.
func FromDomainRooms(rooms []*domain.HotelRoom) *RoomListResponse {
	out := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		out[i] = RoomResponse{
			ID:        room.ID,
			Name:      room.Name,
			Size:      room.Size,
			SortOrder: room.SortOrder,
		}
	}
	return &RoomListResponse{
		Rooms: out,
		Total: len(out),
	}
}
