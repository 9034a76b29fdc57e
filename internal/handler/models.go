package handler

import (
	"encoding/json"
	"time"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
)

// Order is a stored order
type Order struct {
	ID           int64       `json:"id" example:"1"`
	CustomerName string      `json:"customer_name" example:"Kamrul Islam"`
	ItemName     string      `json:"item_name" example:"MSI Gaming Laptop"`
	Quantity     int         `json:"quantity" example:"1"`
	TotalPrice   json.Number `json:"total_price" swaggertype:"number" example:"1299.99"`
	CreatedAt    time.Time   `json:"created_at"`
}

// CreateOrderRequest is the expected body of POST /orders.
// Fields are checked by the order validator, not by decoding into this type.
type CreateOrderRequest struct {
	CustomerName string  `json:"customer_name" example:"Kamrul Islam"`
	ItemName     string  `json:"item_name" example:"MSI Gaming Laptop"`
	Quantity     int     `json:"quantity" example:"1"`
	TotalPrice   float64 `json:"total_price" example:"1299.99"`
}

// CreateOrderResponse is returned after an order is stored
type CreateOrderResponse struct {
	Message string `json:"message" example:"Order successfully created"`
	OrderID int64  `json:"order_id" example:"6"`
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		TotalPrice:   json.Number(o.TotalPrice.StringFixed(2)),
		CreatedAt:    o.CreatedAt.UTC(),
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}
