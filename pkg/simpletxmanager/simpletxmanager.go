// Package simpletxmanager is the metrics-free twin of txmanager, used when
// metrics collection is disabled. It works directly on *sql.DB.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
	"github.com/pawdesk/PD-ReservationService/pkg/txmanager"
)

const defaultTxTimeout = 10 * time.Second

// TransactionManager begins, commits and rolls back transactions on a plain *sql.DB.
type TransactionManager struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactionManager creates a manager with the default transaction timeout.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db, timeout: defaultTxTimeout}
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

// run executes fn inside a transaction, retrying the closure on serialization
// aborts with txmanager's shared policy so both managers surface the same
// txmanager.ErrSerializationFailure on exhaustion.
func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	return txmanager.WithRetry(ctx, func() error {
		return m.runOnce(ctx, opts, fn)
	})
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
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
			return fmt.Errorf("simpletxmanager: rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}
	return nil
}
