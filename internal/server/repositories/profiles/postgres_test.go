package profiles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

var cols = []string{"id", "user_id", "phone", "address", "business_name", "business_description",
	"preferences", "profile_image", "email_notifications", "order_updates", "created_at", "updated_at"}

func TestGetByUserID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM\s+profiles\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "555", "1 Main St", "Ana Shop", "", "", "", true, true, now, now))
	mock.ExpectQuery(`FROM\s+profiles`).WithArgs("u2").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM\s+profiles`).WithArgs("u3").WillReturnError(errors.New("db err"))

	p, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Shop", p.BusinessName)
	assert.True(t, p.EmailNotifications)

	_, err = repo.GetByUserID(context.Background(), "u2")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByUserID(context.Background(), "u3")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db err`), err.Error())
}

func TestUpsertOnboarding(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()

	q := `(?s)^INSERT\s+INTO\s+profiles\s*\(user_id,\s*phone,\s*address,\s*business_name,\s*business_description,\s*preferences\).*ON\s+CONFLICT\s+\(user_id\)\s+DO\s+UPDATE.*COALESCE\(NULLIF\(EXCLUDED\.business_name.*RETURNING`
	mock.ExpectQuery(q).
		WithArgs("u1", "555", "1 Main St", "Ana Shop", "", "").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "555", "1 Main St", "Ana Shop", "", "", "", true, true, now, now))

	got, err := repo.UpsertOnboarding(context.Background(), &models.Profile{
		UserID: "u1", Phone: "555", Address: "1 Main St", BusinessName: "Ana Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertOnboarding_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+profiles`).WillReturnError(errors.New("boom"))

	_, err := repo.UpsertOnboarding(context.Background(), &models.Profile{UserID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestUpsertContactAndNotifications(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+profiles\s*\(user_id,\s*phone,\s*address,\s*profile_image\).*profile_image\s*=\s*EXCLUDED\.profile_image`).
		WithArgs("u1", "555", "2 Side St", "http://img/1.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+profiles\s*\(user_id,\s*email_notifications,\s*order_updates\)`).
		WithArgs("u1", false, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+profiles`).WillReturnError(errors.New("down"))

	require.NoError(t, repo.UpsertContact(context.Background(), "u1", "555", "2 Side St", "http://img/1.png"))
	require.NoError(t, repo.UpsertNotifications(context.Background(), "u1", false, true))

	err := repo.UpsertNotifications(context.Background(), "u1", true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: down")
}
