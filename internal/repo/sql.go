package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/SergeyBogomolovv/shop-orders/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var orderColumns = []string{
	"id", "customer_name", "item_name", "quantity", "total_price_cents", "created_at",
}

type sqlRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

// NewSQLRepo works on top of sqlite and postgres connections, the placeholder
// format and schema are picked from the driver name.
func NewSQLRepo(db *sqlx.DB) *sqlRepo {
	var placeholder sq.PlaceholderFormat = sq.Question
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		placeholder = sq.Dollar
	}

	return &sqlRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (r *sqlRepo) CreateOrder(ctx context.Context, d entities.OrderDraft) (int64, error) {
	query, args := r.qb.Insert("orders").
		Columns("customer_name", "item_name", "quantity", "total_price_cents").
		Values(d.CustomerName, d.ItemName, d.Quantity, DecimalToCents(d.TotalPrice)).
		Suffix("RETURNING id").
		MustSql()

	var id int64
	if err := r.getContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}
	return id, nil
}

func (r *sqlRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result, nil
}

func (r *sqlRepo) GetOrderByID(ctx context.Context, rawID string) (entities.Order, error) {
	id, err := entities.ParseOrderID(rawID)
	if err != nil {
		return entities.Order{}, err
	}

	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	var order Order
	err = r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return OrderToEntity(order), nil
}

func (r *sqlRepo) isPostgres() bool {
	return r.db.DriverName() == "postgres"
}

func (r *sqlRepo) EnsureSchema(ctx context.Context) error {
	schema := sqliteSchema
	if r.isPostgres() {
		schema = postgresSchema
	}

	for _, stmt := range []string{schema, ordersIndex} {
		if _, err := r.execContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SeedIfEmpty inserts drafts only when the table has no rows and reports how many were inserted.
// Inside a postgres transaction the table is locked against concurrent writers first,
// so two processes bootstrapping the same database seed it once.
func (r *sqlRepo) SeedIfEmpty(ctx context.Context, drafts []entities.OrderDraft) (int, error) {
	if r.isPostgres() && trm.ExtractTx(ctx) != nil {
		if _, err := r.execContext(ctx, lockOrders); err != nil {
			return 0, fmt.Errorf("failed to lock orders: %w", err)
		}
	}

	query, args := r.qb.Select("COUNT(*)").From("orders").MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	if count > 0 || len(drafts) == 0 {
		return 0, nil
	}

	q := r.qb.Insert("orders").
		Columns("customer_name", "item_name", "quantity", "total_price_cents")
	for _, d := range drafts {
		q = q.Values(d.CustomerName, d.ItemName, d.Quantity, DecimalToCents(d.TotalPrice))
	}

	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("failed to seed orders: %w", err)
	}
	return len(drafts), nil
}

func (r *sqlRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *sqlRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *sqlRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
