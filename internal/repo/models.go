package repo

import (
	"time"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64     `db:"id"`
	CustomerName    string    `db:"customer_name"`
	ItemName        string    `db:"item_name"`
	Quantity        int       `db:"quantity"`
	TotalPriceCents int64     `db:"total_price_cents"`
	CreatedAt       time.Time `db:"created_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		TotalPrice:   CentsToDecimal(o.TotalPriceCents),
		CreatedAt:    o.CreatedAt,
	}
}

// Prices are stored as integer cents, so a validated two-place decimal round-trips exactly.
func DecimalToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
