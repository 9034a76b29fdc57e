package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/SergeyBogomolovv/shop-orders/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestSQLRepo_Postgres_EnsureSchema(t *testing.T) {
	db, mock := newPostgresMock(t)
	r := NewSQLRepo(db)

	mock.ExpectExec(postgresSchema).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(ordersIndex).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.EnsureSchema(context.Background()))
}

func TestSQLRepo_Postgres_CreateOrder(t *testing.T) {
	db, mock := newPostgresMock(t)
	r := NewSQLRepo(db)

	mock.ExpectQuery("INSERT INTO orders (customer_name,item_name,quantity,total_price_cents) VALUES ($1,$2,$3,$4) RETURNING id").
		WithArgs("Alif", "Keyboard", int64(2), int64(4998)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := r.CreateOrder(context.Background(), entities.OrderDraft{
		CustomerName: "Alif",
		ItemName:     "Keyboard",
		Quantity:     2,
		TotalPrice:   decimal.RequireFromString("49.98"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestSQLRepo_Postgres_GetOrderByID(t *testing.T) {
	db, mock := newPostgresMock(t)
	r := NewSQLRepo(db)
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT id,customer_name,item_name,quantity,total_price_cents,created_at FROM orders WHERE id = $1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(7, "Alif", "Keyboard", 2, 4998, createdAt))

	order, err := r.GetOrderByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, "Alif", order.CustomerName)
	assert.True(t, decimal.RequireFromString("49.98").Equal(order.TotalPrice))
	assert.True(t, createdAt.Equal(order.CreatedAt))
}

func TestSQLRepo_Postgres_SeedIfEmptyLocksTable(t *testing.T) {
	db, mock := newPostgresMock(t)
	r := NewSQLRepo(db)
	txManager := trm.NewManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(lockOrders).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT(*) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO orders (customer_name,item_name,quantity,total_price_cents) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)").
		WithArgs("Alif", "Keyboard", int64(2), int64(4998), "Riha", "Monitor", int64(1), int64(59999)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	drafts := []entities.OrderDraft{
		{CustomerName: "Alif", ItemName: "Keyboard", Quantity: 2, TotalPrice: decimal.RequireFromString("49.98")},
		{CustomerName: "Riha", ItemName: "Monitor", Quantity: 1, TotalPrice: decimal.RequireFromString("599.99")},
	}

	var inserted int
	err := txManager.Do(context.Background(), func(ctx context.Context) error {
		var err error
		inserted, err = r.SeedIfEmpty(ctx, drafts)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}

func TestSQLRepo_Postgres_SeedIfEmptySkipsFilledTable(t *testing.T) {
	db, mock := newPostgresMock(t)
	r := NewSQLRepo(db)

	mock.ExpectQuery("SELECT COUNT(*) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	inserted, err := r.SeedIfEmpty(context.Background(), []entities.OrderDraft{
		{CustomerName: "Alif", ItemName: "Keyboard", Quantity: 2, TotalPrice: decimal.RequireFromString("49.98")},
	})
	require.NoError(t, err)
	assert.Zero(t, inserted)
}
