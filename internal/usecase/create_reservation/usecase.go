package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	roomRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/room"
)

// UseCase books a new reservation. The capacity and room-conflict checks run
// inside one serializable transaction with the insert, so two concurrent
// requests for the same room and overlapping intervals cannot both succeed.
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	directory       DirectoryClient
	txManager       TransactionManager
	maxDaily        int
	logger          Logger
}

// NewUseCase creates the use case. maxDaily caps a tenant's non-cancelled
// reservations per date; 0 disables the cap.
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	maxDaily int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		directory:       directory,
		txManager:       txManager,
		maxDaily:        maxDaily,
		logger:          logger,
	}
}

// Execute validates and books the reservation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%d, dog=%d, category=%s, date=%s, time=%s",
		req.TenantID, req.DogID, req.Category, req.Date, req.StartTime)

	// 1. Structural validation and interval normalization.
	iv, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. The dog must belong to the requesting tenant.
	ok, err := uc.directory.BelongsToTenant(ctx, req.DogID, req.TenantID)
	if err != nil {
		uc.logger.Error("CreateReservation: directory lookup failed for dog=%d: %v", req.DogID, err)
		return nil, fmt.Errorf("%w: directory lookup: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateReservation: dog=%d does not belong to tenant=%d", req.DogID, req.TenantID)
		return nil, ErrForbidden
	}

	// 3. Resolve the room for hotel stays. Disabled rooms keep their history
	// but take no new assignments.
	if req.Category == domain.CategoryHotel {
		room, err := uc.roomRepo.GetByID(ctx, req.TenantID, *req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateReservation: room=%d not found for tenant=%d", *req.RoomID, req.TenantID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("CreateReservation: failed to get room=%d: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !room.Enabled {
			uc.logger.Warn("CreateReservation: room=%d is disabled", room.ID)
			return nil, ErrRoomDisabled
		}
	}

	var result *domain.Reservation

	// 4. Capacity check, conflict check and insert run as one atomic unit.
	// The conflict query takes row locks; the second of two racing requests
	// observes the first's row and rejects.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if uc.maxDaily > 0 {
			count, err := uc.reservationRepo.CountOnDate(txCtx, req.TenantID, iv.Start)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to count reservations: %v", err)
				return fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
			}
			if count >= uc.maxDaily {
				uc.logger.Warn("CreateReservation: daily capacity reached for tenant=%d on %s (%d/%d)",
					req.TenantID, req.Date, count, uc.maxDaily)
				return ErrCapacityExceeded
			}
		}

		if req.Category == domain.CategoryHotel {
			conflictID, err := uc.reservationRepo.FindConflict(txCtx, req.TenantID, *req.RoomID, iv, nil)
			if err != nil {
				uc.logger.Error("CreateReservation: conflict check failed: %v", err)
				return fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
			}
			if conflictID != nil {
				uc.logger.Warn("CreateReservation: room=%d occupied by reservation=%d", *req.RoomID, *conflictID)
				return ErrRoomUnavailable
			}
		}

		res := &domain.Reservation{
			TenantID: req.TenantID,
			DogID:    req.DogID,
			Category: req.Category,
			StartAt:  iv.Start,
			EndAt:    iv.End,
			RoomID:   req.RoomID,
			Status:   domain.StatusScheduled,
			Memo:     req.Memo,
			Details:  req.Details,
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	return FromDomain(result), nil
}
