package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/pawdesk/PD-ReservationService/internal/domain"
	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
	"github.com/pawdesk/PD-ReservationService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"tenant_id",
	"dog_id",
	"category",
	"start_at",
	"end_at",
	"room_id",
	"status",
	"checked_in_at",
	"checked_out_at",
	"cancelled_at",
	"memo",
	"details",
	"created_at",
	"updated_at",
}

// Repository persists reservations.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation and fills in the generated id and timestamps.
// When the context carries an active transaction it is used; creation with a
// conflict or capacity check must always run inside one.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"tenant_id",
			"dog_id",
			"category",
			"start_at",
			"end_at",
			"room_id",
			"status",
			"memo",
			"details",
		).
		Values(
			res.TenantID,
			res.DogID,
			res.Category,
			res.StartAt,
			res.EndAt,
			res.RoomID,
			res.Status,
			res.Memo,
			res.Details,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID fetches a reservation scoped to the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, tenantID, id, false)
}

// GetByIDForUpdate fetches a reservation and takes a row-level write lock.
// Must be called inside a transaction; the lock is held until commit/rollback.
func (r *Repository) GetByIDForUpdate(ctx context.Context, tenantID, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, tenantID, id, true)
}

func (r *Repository) getByID(ctx context.Context, tenantID, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	return reservations[0], nil
}

// FindConflict returns the id of a non-cancelled reservation in the same room
// whose effective interval overlaps the candidate, or nil when the room is free.
// The effective end of a reservation without an explicit end time defaults to
// start plus one day. Touching endpoints are not a conflict.
//
// Inside a transaction the matching rows are locked with FOR UPDATE so the
// check and the subsequent write share one lock scope. Calling this outside
// the transaction that performs the write is a correctness bug.
func (r *Repository) FindConflict(ctx context.Context, tenantID, roomID int64, iv domain.Interval, excludeID *int64) (*int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID, "room_id": roomID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Expr("COALESCE(end_at, start_at + make_interval(hours => ?)) > ?", domain.DefaultStayHours, iv.Start)).
		Where(squirrel.Lt{"start_at": iv.EffectiveEnd()}).
		OrderBy("start_at ASC").
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - build select query: %v", ErrBuildQuery, err)
	}

	var conflictID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&conflictID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - scan conflict id: %v", ErrScanRow, err)
	}

	return &conflictID, nil
}

// CountOnDate counts a tenant's non-cancelled reservations starting on the
// given date. Used by the daily capacity guard.
func (r *Repository) CountOnDate(ctx context.Context, tenantID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Expr("start_at::date = ?::date", date)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOnDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListWithFilter returns a tenant's reservations with flexible filtering by
// dog, room, start-date range and status. Cancelled reservations are excluded
// unless IncludeInactive or an explicit status is set. Used by the booking UI
// and by the calendar/CSV exporters.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.DogID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dog_id": *filter.DogID})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("start_at::date >= ?::date", *filter.StartDate))
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("start_at::date <= ?::date", *filter.EndDate))
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update persists the mutable fields of a reservation and bumps updated_at.
// Meant to run on a row previously locked with GetByIDForUpdate.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("category", res.Category).
		Set("start_at", res.StartAt).
		Set("end_at", res.EndAt).
		Set("room_id", res.RoomID).
		Set("status", res.Status).
		Set("checked_in_at", res.CheckedInAt).
		Set("checked_out_at", res.CheckedOutAt).
		Set("cancelled_at", res.CancelledAt).
		Set("memo", res.Memo).
		Set("details", res.Details).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": res.TenantID, "id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// Delete removes a reservation row outright. Administrative escape hatch;
// normal operation cancels instead.
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations scans query results into reservations.
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.TenantID,
			&res.DogID,
			&res.Category,
			&res.StartAt,
			&res.EndAt,
			&res.RoomID,
			&res.Status,
			&res.CheckedInAt,
			&res.CheckedOutAt,
			&res.CancelledAt,
			&res.Memo,
			&res.Details,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
