package update_reservation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	reservationRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/room"
)

// UseCase applies a change set to a reservation: reschedule, room
// reassignment, category change, memo/details edits and status transitions.
// The whole sequence (row lock, conflict re-check, transition, ledger
// decrement, write) commits or rolls back as one unit. A failed update can
// never leave a consumed session behind.
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	contractRepo    ContractRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	contractRepo ContractRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		contractRepo:    contractRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the update.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: tenant=%d, reservation=%d", req.TenantID, req.ReservationID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result        *domain.Reservation
		ledgerApplied bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Lock the reservation row first. Everything after this point sees
		// a stable row and blocks concurrent writers.
		current, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.TenantID, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation=%d not found for tenant=%d",
					req.ReservationID, req.TenantID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to lock reservation=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to lock reservation: %v", ErrInternal, err)
		}

		// Re-derive the effective next state from existing + requested changes.
		nextCategory := current.Category
		if req.Category != nil {
			nextCategory = *req.Category
		}

		iv, err := mergeInterval(current, req)
		if err != nil {
			uc.logger.Warn("UpdateReservation: interval merge failed: %v", err)
			return err
		}

		nextRoom := mergeRoom(current, req)

		if err := validateMergedState(nextCategory, iv, nextRoom); err != nil {
			uc.logger.Warn("UpdateReservation: merged state invalid: %v", err)
			return err
		}

		// A newly assigned room must exist and be enabled.
		if req.RoomID != nil && (current.RoomID == nil || *req.RoomID != *current.RoomID) {
			room, err := uc.roomRepo.GetByID(txCtx, req.TenantID, *req.RoomID)
			if err != nil {
				if errors.Is(err, roomRepo.ErrRoomNotFound) {
					uc.logger.Warn("UpdateReservation: room=%d not found for tenant=%d", *req.RoomID, req.TenantID)
					return ErrRoomNotFound
				}
				uc.logger.Error("UpdateReservation: failed to get room=%d: %v", *req.RoomID, err)
				return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
			}
			if !room.Enabled {
				uc.logger.Warn("UpdateReservation: room=%d is disabled", room.ID)
				return ErrRoomDisabled
			}
		}

		nextStatus := current.Status
		if req.Status != nil {
			nextStatus = *req.Status
		}
		if !domain.CanTransition(current.Status, nextStatus) {
			uc.logger.Warn("UpdateReservation: illegal transition %s -> %s for reservation=%d",
				current.Status, nextStatus, current.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, nextStatus)
		}

		// Room/interval changes are validated before the status transition
		// is applied; a conflict aborts the whole update. A cancelled
		// reservation does not occupy its slot, so edits to a cancelled row
		// never contend with whoever legally rebooked the interval.
		if nextCategory == domain.CategoryHotel && nextStatus != domain.StatusCancelled {
			conflictID, err := uc.reservationRepo.FindConflict(txCtx, req.TenantID, *nextRoom, iv, &current.ID)
			if err != nil {
				uc.logger.Error("UpdateReservation: conflict check failed: %v", err)
				return fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
			}
			if conflictID != nil {
				uc.logger.Warn("UpdateReservation: room=%d occupied by reservation=%d", *nextRoom, *conflictID)
				return ErrRoomUnavailable
			}
		}

		// A request that changes nothing is answered from the current row
		// without a write, so updated_at stays untouched.
		if !changesAnything(current, req, nextCategory, nextStatus, iv, nextRoom) {
			uc.logger.Info("UpdateReservation: no effective change for reservation=%d", current.ID)
			result = current
			return nil
		}

		current.Category = nextCategory
		current.StartAt = iv.Start
		current.EndAt = iv.End
		current.RoomID = nextRoom
		if req.Memo != nil {
			current.Memo = req.Memo
		}
		if req.Details != nil {
			current.Details = req.Details
		}

		// Status side effects apply only on a real transition; setting the
		// current status again is an idempotent no-op.
		if nextStatus != current.Status {
			switch nextStatus {
			case domain.StatusCheckedIn:
				// The ledger decrement is gated on checked_in_at having been
				// null, so a reservation is charged at most once.
				if current.CheckedInAt == nil {
					t := now
					current.CheckedInAt = &t

					applied, err := uc.contractRepo.DecrementOneSession(txCtx, current.DogID, now)
					if err != nil {
						uc.logger.Error("UpdateReservation: ledger decrement failed for dog=%d: %v",
							current.DogID, err)
						return fmt.Errorf("%w: ledger decrement: %v", ErrInternal, err)
					}
					ledgerApplied = applied
					if applied {
						uc.logger.Info("UpdateReservation: consumed one session for dog=%d", current.DogID)
					} else {
						uc.logger.Info("UpdateReservation: no qualifying ticket contract for dog=%d, nothing consumed",
							current.DogID)
					}
				}
			case domain.StatusCheckedOut:
				if current.CheckedOutAt == nil {
					t := now
					current.CheckedOutAt = &t
				}
			case domain.StatusCancelled:
				if current.CancelledAt == nil {
					t := now
					current.CancelledAt = &t
				}
			}
			current.Status = nextStatus
		}

		updated, err := uc.reservationRepo.Update(txCtx, current)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to persist reservation=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to persist reservation: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d, status=%s",
		result.ID, result.Status)
	return FromDomain(result, ledgerApplied), nil
}

// changesAnything compares the merged next state against the stored row.
func changesAnything(
	current *domain.Reservation,
	req *Request,
	nextCategory domain.ServiceCategory,
	nextStatus domain.ReservationStatus,
	iv domain.Interval,
	nextRoom *int64,
) bool {
	return nextCategory != current.Category ||
		nextStatus != current.Status ||
		!sameWallClock(iv.Start, current.StartAt) ||
		!sameWallClockPtr(iv.End, current.EndAt) ||
		!equalInt64Ptr(nextRoom, current.RoomID) ||
		(req.Memo != nil && (current.Memo == nil || *current.Memo != *req.Memo)) ||
		(req.Details != nil && !bytes.Equal(req.Details, current.Details))
}

// sameWallClock compares minute-granular naive timestamps. The driver and the
// interval parser may place the same wall clock in different locations.
func sameWallClock(a, b time.Time) bool {
	return a.Format(domain.DateTimeFormat) == b.Format(domain.DateTimeFormat)
}

func sameWallClockPtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sameWallClock(*a, *b)
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
