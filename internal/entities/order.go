package entities

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a persisted customer order.
type Order struct {
	ID           int64
	CustomerName string
	ItemName     string
	Quantity     int
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
}

// OrderDraft is a normalized order that has passed validation but has not been stored yet.
type OrderDraft struct {
	CustomerName string
	ItemName     string
	Quantity     int
	TotalPrice   decimal.Decimal
}

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrMalformedOrderID = errors.New("malformed order id")
)

// ValidationError carries every message collected while validating an order.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Messages, "; ")
}

// ParseOrderID accepts only non-empty strings of ASCII digits.
// A well-formed id that does not fit into int64 cannot exist, so it yields ErrOrderNotFound.
func ParseOrderID(raw string) (int64, error) {
	if raw == "" {
		return 0, ErrMalformedOrderID
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, ErrMalformedOrderID
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrOrderNotFound
	}
	return id, nil
}
