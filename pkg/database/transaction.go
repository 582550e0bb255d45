package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxFunc là function được execute trong transaction
type TxFunc func(tx pgx.Tx) error

// WithTransaction wraps fn trong transaction.
// Auto rollback nếu fn trả error hoặc panic, auto commit nếu success.
func WithTransaction(ctx context.Context, db TxStarter, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WithTransactionResult giống WithTransaction nhưng trả về giá trị
func WithTransactionResult[T any](ctx context.Context, db TxStarter, fn func(tx pgx.Tx) (T, error)) (T, error) {
	var result T

	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
