// Package reservations serves the read side of the reservation API plus the
// two operations that do not need the full update coordinator: cancel (a thin
// wrapper over it) and the administrative hard delete (which bypasses the
// state machine entirely).
package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	reservationRepo "github.com/pawdesk/PD-ReservationService/internal/infra/storage/reservation"
	"github.com/pawdesk/PD-ReservationService/internal/service/reservations/models"
	updateReservation "github.com/pawdesk/PD-ReservationService/internal/usecase/update_reservation"
	"github.com/pawdesk/PD-ReservationService/pkg/ptr"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

// Service handles reservation reads, cancellation and hard deletion.
type Service struct {
	reservationRepo ReservationRepository
	updateUC        UpdateReservationUseCase
	logger          Logger
}

// NewService creates the service.
func NewService(
	reservationRepo ReservationRepository,
	updateUC UpdateReservationUseCase,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		updateUC:        updateUC,
		logger:          logger,
	}
}

// GetByID fetches one reservation scoped to the tenant.
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for tenant=%d", id, tenantID)

	res, err := s.reservationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// List returns the tenant's reservations with filtering by dog, room, date
// range and status. Calendar and CSV exporters read committed state through
// this path and perform no writes.
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations for tenant=%d", len(list), req.TenantID)
	return models.FromDomainReservationList(list), nil
}

// Cancel moves the reservation to cancelled through the update coordinator,
// so the transition matrix and timestamps apply exactly as for any other
// status change.
func (s *Service) Cancel(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d for tenant=%d", id, tenantID)

	resp, err := s.updateUC.Execute(ctx, &updateReservation.Request{
		TenantID:      tenantID,
		ReservationID: id,
		Status:        ptr.Ptr(domain.StatusCancelled),
	})
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		case errors.Is(err, updateReservation.ErrInvalidTransition):
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled", id)
			return nil, ErrCannotCancel
		case errors.Is(err, txmanager.ErrSerializationFailure):
			// Retryable contention keeps its sentinel so the handler can
			// answer with a retry status instead of a generic failure.
			s.logger.Warn("Cancel: transaction contention for reservation id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("Cancel: update failed for reservation id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - update error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return &models.ReservationResponse{
		ID:           resp.ID,
		TenantID:     resp.TenantID,
		DogID:        resp.DogID,
		Category:     resp.Category,
		StartAt:      resp.StartAt,
		EndAt:        resp.EndAt,
		RoomID:       resp.RoomID,
		Status:       resp.Status,
		CheckedInAt:  resp.CheckedInAt,
		CheckedOutAt: resp.CheckedOutAt,
		CancelledAt:  resp.CancelledAt,
		Memo:         resp.Memo,
		Details:      resp.Details,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}, nil
}

// Delete removes the reservation row outright, bypassing the state machine.
// Administrative cleanup only; cancellation is the normal path.
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("Delete: hard-deleting reservation id=%d for tenant=%d", id, tenantID)

	if err := s.reservationRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}
