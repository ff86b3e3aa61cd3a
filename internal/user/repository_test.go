// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-portal/internal/auth"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

var userRowColumns = []string{"id", "email_id", "employee_name", "employee_id", "password_hash", "role"}

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestCreateReturnsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users .*RETURNING id`).
		WithArgs("jane@example.com", "Jane Doe", "E100", "$argon2id$x", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	u := &User{Email: "jane@example.com", Name: "Jane Doe", EmployeeID: "E100", PasswordHash: "$argon2id$x", Role: RoleUser}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(3), u.ID)
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{Email: "jane@example.com"})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM users WHERE email_id = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(3), "jane@example.com", "Jane Doe", "E100", "hash", "user"))

	u, err := repo.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, core.Identity{
		UserID: 3, Email: "jane@example.com", Name: "Jane Doe", EmployeeID: "E100", Role: "user",
	}, u.Identity())
}

func TestGetByEmailMissing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM users WHERE email_id = \$1`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdatePasswordMissingUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE users SET password_hash = \$2 WHERE id = \$1`).
		WithArgs(int64(9), "new").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 9, "new")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceNormalizesEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	svc := NewService(repo)

	mock.ExpectQuery(`(?s)INSERT INTO users`).
		WithArgs("jane@example.com", "Jane Doe", "E100", "h", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`FROM users WHERE email_id = \$1`).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "jane@example.com", "Jane Doe", "E100", "h", "user"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	ctx := context.Background()

	created, err := svc.Create(ctx, auth.NewAccount{
		Name: "Jane Doe", EmployeeID: "E100", Email: " JANE@example.com", PasswordHash: "h",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)

	found, err := svc.GetByEmail(ctx, "Jane@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "h", found.PasswordHash)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
