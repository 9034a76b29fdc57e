package repo_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/SergeyBogomolovv/shop-orders/internal/repo"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type orderStore interface {
	CreateOrder(ctx context.Context, d entities.OrderDraft) (int64, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	GetOrderByID(ctx context.Context, rawID string) (entities.Order, error)
	EnsureSchema(ctx context.Context) error
	SeedIfEmpty(ctx context.Context, drafts []entities.OrderDraft) (int, error)
}

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// every new connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}

func newSQLStore(t *testing.T) orderStore {
	r := repo.NewSQLRepo(newTestDB(t))
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

func newMemoryStore(t *testing.T) orderStore {
	return repo.NewMemoryRepo()
}

func draft(name string, qty int, price string) entities.OrderDraft {
	return entities.OrderDraft{
		CustomerName: name,
		ItemName:     "Item " + name,
		Quantity:     qty,
		TotalPrice:   decimal.RequireFromString(price),
	}
}

func TestOrderStores(t *testing.T) {
	stores := map[string]func(t *testing.T) orderStore{
		"sql":    newSQLStore,
		"memory": newMemoryStore,
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("create and get", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				id, err := s.CreateOrder(ctx, draft("Alif", 2, "49.98"))
				require.NoError(t, err)
				assert.Positive(t, id)

				got, err := s.GetOrderByID(ctx, strconv.FormatInt(id, 10))
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)
				assert.Equal(t, "Alif", got.CustomerName)
				assert.Equal(t, "Item Alif", got.ItemName)
				assert.Equal(t, 2, got.Quantity)
				assert.Equal(t, "49.98", got.TotalPrice.StringFixed(2))
				assert.False(t, got.CreatedAt.IsZero())
			})

			t.Run("ids are unique and increasing", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				first, err := s.CreateOrder(ctx, draft("A", 1, "1.00"))
				require.NoError(t, err)
				second, err := s.CreateOrder(ctx, draft("B", 1, "1.00"))
				require.NoError(t, err)
				assert.Greater(t, second, first)
			})

			t.Run("list is newest first", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				orders, err := s.ListOrders(ctx)
				require.NoError(t, err)
				assert.NotNil(t, orders)
				assert.Empty(t, orders)

				for _, n := range []string{"A", "B", "C"} {
					_, err := s.CreateOrder(ctx, draft(n, 1, "10.00"))
					require.NoError(t, err)
				}

				orders, err = s.ListOrders(ctx)
				require.NoError(t, err)
				require.Len(t, orders, 3)
				assert.Equal(t, "C", orders[0].CustomerName)
				assert.Equal(t, "B", orders[1].CustomerName)
				assert.Equal(t, "A", orders[2].CustomerName)
			})

			t.Run("get errors", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				_, err := s.GetOrderByID(ctx, "abc")
				assert.ErrorIs(t, err, entities.ErrMalformedOrderID)

				_, err = s.GetOrderByID(ctx, "999999")
				assert.ErrorIs(t, err, entities.ErrOrderNotFound)

				_, err = s.GetOrderByID(ctx, "99999999999999999999")
				assert.ErrorIs(t, err, entities.ErrOrderNotFound)
			})

			t.Run("seed only when empty", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)
				seeds := []entities.OrderDraft{draft("A", 1, "1.00"), draft("B", 2, "2.00")}

				require.NoError(t, s.EnsureSchema(ctx))
				n, err := s.SeedIfEmpty(ctx, seeds)
				require.NoError(t, err)
				assert.Equal(t, 2, n)

				require.NoError(t, s.EnsureSchema(ctx))
				n, err = s.SeedIfEmpty(ctx, seeds)
				require.NoError(t, err)
				assert.Zero(t, n)

				orders, err := s.ListOrders(ctx)
				require.NoError(t, err)
				assert.Len(t, orders, 2)
			})

			t.Run("price is stored exactly", func(t *testing.T) {
				ctx := context.Background()
				s := newStore(t)

				for _, price := range []string{"0.01", "0.10", "19.99", "1000000.00"} {
					id, err := s.CreateOrder(ctx, draft("P", 1, price))
					require.NoError(t, err)

					got, err := s.GetOrderByID(ctx, strconv.FormatInt(id, 10))
					require.NoError(t, err)
					assert.True(t, decimal.RequireFromString(price).Equal(got.TotalPrice), "price %s, got %s", price, got.TotalPrice)
				}
			})
		})
	}
}

func TestSQLRepo_ListOrdersByCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := repo.NewSQLRepo(db)
	require.NoError(t, r.EnsureSchema(ctx))

	_, err := r.CreateOrder(ctx, draft("New", 1, "1.00"))
	require.NoError(t, err)

	// inserted later but created earlier
	_, err = db.ExecContext(ctx,
		`INSERT INTO orders (customer_name, item_name, quantity, total_price_cents, created_at)
		 VALUES ('Old', 'Thing', 1, 100, '2020-01-01 00:00:00')`)
	require.NoError(t, err)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "New", orders[0].CustomerName)
	assert.Equal(t, "Old", orders[1].CustomerName)
	assert.Equal(t, 2020, orders[1].CreatedAt.Year())
}

func TestSQLRepo_CheckConstraints(t *testing.T) {
	ctx := context.Background()
	r := repo.NewSQLRepo(newTestDB(t))
	require.NoError(t, r.EnsureSchema(ctx))

	_, err := r.CreateOrder(ctx, draft("A", 0, "1.00"))
	assert.Error(t, err)

	_, err = r.CreateOrder(ctx, draft("A", 1, "0.00"))
	assert.Error(t, err)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSQLRepo_StorageError(t *testing.T) {
	ctx := context.Background()
	r := repo.NewSQLRepo(newTestDB(t))

	// no schema
	_, err := r.ListOrders(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrOrderNotFound)

	_, err = r.GetOrderByID(ctx, "1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestMemoryRepo_ListOrdersByCreatedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := repo.NewMemoryRepo().WithClock(func() time.Time { return now })

	_, err := r.CreateOrder(ctx, draft("Late", 1, "1.00"))
	require.NoError(t, err)

	now = now.Add(-time.Hour)
	_, err = r.CreateOrder(ctx, draft("Early", 1, "1.00"))
	require.NoError(t, err)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Late", orders[0].CustomerName)
	assert.Equal(t, "Early", orders[1].CustomerName)
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(129999), repo.DecimalToCents(decimal.RequireFromString("1299.99")))
	assert.Equal(t, int64(1), repo.DecimalToCents(decimal.RequireFromString("0.01")))
	assert.Equal(t, "1299.99", repo.CentsToDecimal(129999).StringFixed(2))
}
