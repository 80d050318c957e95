package get_room_availability

import (
	"context"
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// UseCase answers the read-only availability query a booking UI or chatbot
// runs before calling create. The answer is advisory: only the creation
// transaction's own conflict check is authoritative.
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(reservationRepo ReservationRepository, roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		logger:          logger,
	}
}

// Execute resolves per-room availability for the candidate interval.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomAvailability: tenant=%d, date=%s, time=%s", req.TenantID, req.Date, req.StartTime)

	if req.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	iv, err := domain.ParseInterval(req.Date, req.StartTime, req.EndAt)
	if err != nil {
		uc.logger.Warn("GetRoomAvailability: interval parse failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	rooms, err := uc.roomRepo.ListEnabled(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	slots := make([]RoomSlot, 0, len(rooms))
	for _, room := range rooms {
		conflictID, err := uc.reservationRepo.FindConflict(ctx, req.TenantID, room.ID, iv, req.ExcludeReservationID)
		if err != nil {
			uc.logger.Error("GetRoomAvailability: conflict check failed for room=%d: %v", room.ID, err)
			return nil, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
		}
		slots = append(slots, RoomSlot{
			RoomID:     room.ID,
			Name:       room.Name,
			Size:       room.Size,
			Available:  conflictID == nil,
			ConflictID: conflictID,
		})
	}

	uc.logger.Info("GetRoomAvailability: tenant=%d, %d rooms answered", req.TenantID, len(slots))
	return &Response{
		TenantID: req.TenantID,
		Interval: iv,
		Rooms:    slots,
	}, nil
}
