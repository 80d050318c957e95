// Package rooms exposes the read-only room registry to API consumers.
package rooms

import (
	"context"
	"fmt"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
)

// RoomRepository reads the tenant's room registry.
type RoomRepository interface {
	ListEnabled(ctx context.Context, tenantID int64) ([]*domain.HotelRoom, error)
}

// Logger is the logging interface accepted by the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service lists rooms.
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService creates the service.
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{roomRepo: roomRepo, logger: logger}
}

// ListEnabled returns the tenant's enabled rooms in display order.
func (s *Service) ListEnabled(ctx context.Context, tenantID int64) ([]*domain.HotelRoom, error) {
	rooms, err := s.roomRepo.ListEnabled(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListEnabled: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("rooms service: list enabled: %w", err)
	}
	s.logger.Info("ListEnabled: fetched %d rooms for tenant=%d", len(rooms), tenantID)
	return rooms, nil
}
