// Package room reads the tenant's hotel-room registry. Rooms are managed by
// the admin surface of the product; this service only reads them.
package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
	"github.com/pawdesk/PD-ReservationService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"id",
	"tenant_id",
	"name",
	"size",
	"enabled",
	"sort_order",
	"created_at",
	"updated_at",
}

// Repository reads hotel rooms.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a room repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a room scoped to the tenant, disabled rooms included.
// Callers that assign rooms must check Enabled themselves: disabled rooms
// stay resolvable for historical reservations but take no new assignments.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.HotelRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("hotel_rooms").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.HotelRoom
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.TenantID,
		&room.Name,
		&room.Size,
		&room.Enabled,
		&room.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

// ListEnabled returns the tenant's enabled rooms in display order.
func (r *Repository) ListEnabled(ctx context.Context, tenantID int64) ([]*domain.HotelRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("hotel_rooms").
		Where(squirrel.Eq{"tenant_id": tenantID, "enabled": true}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.HotelRoom, 0)
	for rows.Next() {
		var room domain.HotelRoom
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&room.ID,
			&room.TenantID,
			&room.Name,
			&room.Size,
			&room.Enabled,
			&room.SortOrder,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEnabled - scan row: %v", ErrScanRow, err)
		}

		room.CreatedAt = createdAt.Time
		room.UpdatedAt = updatedAt.Time

		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEnabled - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}
