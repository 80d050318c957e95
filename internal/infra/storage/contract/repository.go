// Package contract accesses the session-ledger side of a dog's contract.
// The service decrements ticket balances transactionally but does not own
// contract creation, renewal or pricing.
package contract

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

var contractColumns = []string{
	"id",
	"dog_id",
	"kind",
	"total_sessions",
	"remaining_sessions",
	"expires_on",
	"created_at",
}

// Repository reads and decrements contracts.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a contract repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveTicketByDog returns the dog's most-recently-created ticket contract
// that is valid on the given day and still has sessions, or ErrContractNotFound.
// Inside a transaction the row is locked with FOR UPDATE so a concurrent
// check-in cannot decrement the same session.
func (r *Repository) GetActiveTicketByDog(ctx context.Context, dogID int64, day time.Time) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"dog_id": dogID, "kind": domain.ContractTicket}).
		Where(squirrel.Gt{"remaining_sessions": 0}).
		Where(squirrel.Or{
			squirrel.Eq{"expires_on": nil},
			squirrel.Expr("expires_on >= ?::date", day),
		}).
		OrderBy("created_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTicketByDog - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Contract
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.DogID,
		&c.Kind,
		&c.TotalSessions,
		&c.RemainingSessions,
		&c.ExpiresOn,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTicketByDog - scan contract: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	return &c, nil
}

// DecrementOneSession consumes a single session from the dog's active ticket
// contract. Returns applied=false when the dog has no qualifying contract;
// that is a normal outcome (monthly contracts and contract-less visits), not
// an error. Must run inside the same transaction as the check-in it pays for;
// the caller guarantees it is invoked at most once per check-in transition.
func (r *Repository) DecrementOneSession(ctx context.Context, dogID int64, day time.Time) (bool, error) {
	c, err := r.GetActiveTicketByDog(ctx, dogID, day)
	if err == ErrContractNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// remaining_sessions > 0 is re-stated in the WHERE so the balance can
	// never go negative even if the lock was not taken.
	query, args, err := psqlbuilder.Update("contracts").
		Set("remaining_sessions", squirrel.Expr("remaining_sessions - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Where(squirrel.Gt{"remaining_sessions": 0}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DecrementOneSession - build update query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DecrementOneSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DecrementOneSession - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}
