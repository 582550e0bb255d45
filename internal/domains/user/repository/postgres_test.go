package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard-backend/internal/domains/user"
	"postboard-backend/pkg/cache/cachetest"
)

var publicColumns = []string{"id", "username", "full_name", "role", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreate(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(pgxmock.AnyArg(), "leo", "Leo", "hash", user.RoleUser).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
		},
		{
			name: "duplicate username",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(pgxmock.AnyArg(), "leo", "Leo", "hash", user.RoleUser).
					WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
			},
			wantErr: user.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			tt.setup(mock)
			repo := NewPostgresRepository(mock, nil, time.Minute)

			u := &user.User{ID: uuid.New(), Username: "leo", FullName: "Leo", PasswordHash: "hash", Role: user.RoleUser}
			err := repo.Create(context.Background(), u)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, u.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindByUsername_CachesResult(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mem := cachetest.NewMemory()
	repo := NewPostgresRepository(mock, mem, time.Minute)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT id, username`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows(publicColumns).AddRow(id, "leo", "Leo", user.RoleUser, now, now))

	first, err := repo.FindByUsername(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)
	assert.True(t, mem.Has(userUsernameKeyPrefix+"leo"))
	assert.True(t, mem.Has(userIDKeyPrefix+id.String()))

	// second lookup is served from cache: no further query expected
	second, err := repo.FindByUsername(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "leo", second.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername_CacheErrorFallsBackToDB(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mem := cachetest.NewMemory()
	mem.FailWith = errors.New("redis down")
	repo := NewPostgresRepository(mock, mem, time.Minute)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, username`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows(publicColumns).AddRow(uuid.New(), "leo", "", user.RoleUser, now, now))

	u, err := repo.FindByUsername(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, "leo", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPostgresRepository(mock, nil, time.Minute)

	mock.ExpectQuery(`SELECT id, username`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCredentials(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPostgresRepository(mock, cachetest.NewMemory(), time.Minute)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, username, full_name, password_hash`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "full_name", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(uuid.New(), "leo", "", "bcrypt-hash", user.RoleAdmin, now, now))

	u, err := repo.FindCredentials(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", u.PasswordHash)
	assert.Equal(t, user.RoleAdmin, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByUsername(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPostgresRepository(mock, nil, time.Minute)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "leo")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRole_EvictsCache(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mem := cachetest.NewMemory()
	repo := NewPostgresRepository(mock, mem, time.Minute)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT id, username`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows(publicColumns).AddRow(id, "leo", "Leo", user.RoleUser, now, now))
	mock.ExpectQuery(`UPDATE users SET role`).
		WithArgs(user.RoleAdmin, "leo").
		WillReturnRows(pgxmock.NewRows(publicColumns).AddRow(id, "leo", "Leo", user.RoleAdmin, now, now))

	_, err := repo.FindByUsername(context.Background(), "leo")
	require.NoError(t, err)
	require.True(t, mem.Has(userUsernameKeyPrefix+"leo"))

	promoted, err := repo.SetRole(context.Background(), "leo", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, promoted.Role)
	assert.False(t, mem.Has(userUsernameKeyPrefix+"leo"))
	assert.False(t, mem.Has(userIDKeyPrefix+id.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRole_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		repo := NewPostgresRepository(mock, nil, time.Minute)

		mock.ExpectQuery(`UPDATE users SET role`).
			WithArgs(user.RoleAdmin, "ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.SetRole(context.Background(), "ghost", user.RoleAdmin)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid role", func(t *testing.T) {
		t.Parallel()

		mock := newMock(t)
		repo := NewPostgresRepository(mock, nil, time.Minute)

		_, err := repo.SetRole(context.Background(), "leo", user.Role("root"))
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
