package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		fn      TxFunc
		wantErr error
	}{
		{
			name: "commits on success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE posts`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			fn: func(tx pgx.Tx) error {
				_, err := tx.Exec(context.Background(), "UPDATE posts SET text = 'x'")
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(pgx.Tx) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name: "begin failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errBoom)
			},
			fn:      func(pgx.Tx) error { return nil },
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			err = WithTransaction(context.Background(), mock, tt.fn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithTransactionResult(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := WithTransactionResult(context.Background(), mock, func(pgx.Tx) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
