package products

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "seller_id", "title", "description", "price", "category", "condition", "location",
	"brand", "model", "color", "quantity", "features", "specifications", "negotiable", "shipping", "warranty",
	"warranty_duration", "images", "created_at", "updated_at", "name"}

const (
	p1 = "5d0f8a8e-2b7c-4e58-8f0a-0c3f6f1b9a01"
	p2 = "5d0f8a8e-2b7c-4e58-8f0a-0c3f6f1b9a02"
	p3 = "5d0f8a8e-2b7c-4e58-8f0a-0c3f6f1b9a03"
)

func row(id, seller string, now time.Time) []driver.Value {
	return []driver.Value{id, seller, "Lamp", "Desk lamp", "19.99", "other", "new", "Riga", "", "", "",
		int64(1), []byte(`["dimmable"]`), []byte(`{"power":"5W"}`), false, true, false, "", []byte(`[]`), now, now,
		"Lamps Ltd owner"}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	price := decimal.RequireFromString("19.99")
	mock.ExpectQuery(`(?s)^WITH\s+p\s+AS\s+\(INSERT\s+INTO\s+products.*RETURNING\s+\*\).*JOIN\s+users\s+u`).
		WithArgs("s1", "Lamp", "Desk lamp", price, "other", "new", "Riga", "", "", "", 1,
			[]byte(`["dimmable"]`), []byte(`{"power":"5W"}`), false, true, false, "", []byte(`[]`)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row(p1, "s1", now)...))

	p := &models.Product{
		SellerID: "s1", Title: "Lamp", Description: "Desk lamp", Price: price, Category: "other",
		Condition: "new", Location: "Riga", Quantity: 1, Features: []string{"dimmable"},
		Specifications: map[string]string{"power": "5W"}, Shipping: true,
	}
	got, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p1, got.ID)
	assert.True(t, got.Price.Equal(price))
	assert.True(t, got.Shipping)
	assert.Equal(t, "Lamps Ltd owner", got.SellerName)
	assert.Equal(t, []string{"dimmable"}, got.Features)
	assert.Equal(t, map[string]string{"power": "5W"}, got.Specifications)
	assert.Equal(t, []string{}, got.Images)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	q := `FROM\s+products\s+p\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.seller_id\s+WHERE\s+p\.id\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs(p1).WillReturnRows(sqlmock.NewRows(cols).AddRow(row(p1, "s1", now)...))
	mock.ExpectQuery(q).WithArgs(p2).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs(p3).WillReturnError(errors.New("db err"))

	p, err := repo.GetByID(context.Background(), p1)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.SellerID)
	assert.Equal(t, "Lamps Ltd owner", p.ToAPI().Seller.Name)

	_, err = repo.GetByID(context.Background(), p2)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(context.Background(), p3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db err")
}

func TestMalformedIDIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Update(context.Background(), &models.Product{ID: "abc"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet(), "no query is sent for a malformed id")
}

func TestListAndListBySeller(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.seller_id\s+ORDER\s+BY\s+p\.created_at\s+DESC$`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(row(p2, "s2", now)...).
			AddRow(row(p1, "s1", now.Add(-time.Hour))...))
	mock.ExpectQuery(`WHERE\s+p\.seller_id\s*=\s*\$1\s+ORDER\s+BY\s+p\.created_at\s+DESC$`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row(p1, "s1", now)...))
	mock.ExpectQuery(`FROM\s+products`).WithArgs("s3").WillReturnRows(sqlmock.NewRows(cols))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, p2, all[0].ID)

	mine, err := repo.ListBySeller(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	none, err := repo.ListBySeller(context.Background(), "s3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestList_BadJSON(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	bad := row(p1, "s1", now)
	bad[12] = []byte(`not json`)
	mock.ExpectQuery(`FROM\s+products`).WillReturnRows(sqlmock.NewRows(cols).AddRow(bad...))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "features")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^WITH\s+p\s+AS\s+\(UPDATE\s+products\s+SET.*WHERE\s+id\s*=\s*\$1.*RETURNING\s+\*\)`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row(p1, "s1", now)...))
	mock.ExpectQuery(`(?s)UPDATE\s+products`).WillReturnError(sql.ErrNoRows)

	got, err := repo.Update(context.Background(), &models.Product{ID: p1, Title: "Lamp"})
	require.NoError(t, err)
	assert.Equal(t, p1, got.ID)

	_, err = repo.Update(context.Background(), &models.Product{ID: p2})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+products\s+WHERE\s+id\s*=\s*\$1`).WithArgs(p1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+products`).WithArgs(p2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE\s+FROM\s+products`).WithArgs(p3).WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), p1))
	assert.ErrorIs(t, repo.Delete(context.Background(), p2), common.ErrorNotFound)

	err := repo.Delete(context.Background(), p3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db err")
}
