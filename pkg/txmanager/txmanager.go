// Package txmanager runs functions inside database transactions on a
// metrics-wrapped connection. The active transaction is stashed in the
// context so repositories pick it up through dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
)

// defaultTxTimeout bounds how long a transaction may hold its locks.
// A stalled peer then surfaces as a retryable error instead of wedging a row.
const defaultTxTimeout = 10 * time.Second

// TransactionManager begins, commits and rolls back transactions.
type TransactionManager struct {
	db      *dbmetrics.DB
	timeout time.Duration
}

// NewTransactionManager creates a manager with the default transaction timeout.
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db, timeout: defaultTxTimeout}
}

// WithTimeout overrides the per-transaction timeout.
func (m *TransactionManager) WithTimeout(d time.Duration) *TransactionManager {
	m.timeout = d
	return m
}

// Do runs fn inside a read-committed transaction.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable runs fn inside a serializable transaction.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

// run executes fn inside a transaction, retrying the whole closure on
// serialization aborts. A rerun sees the winner's committed rows, so a racing
// loser resolves to the business outcome instead of an infrastructure error.
func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	return WithRetry(ctx, func() error {
		return m.runOnce(ctx, opts, fn)
	})
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.ContextWithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("txmanager: rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}
	return nil
}
