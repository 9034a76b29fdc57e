package validation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	FieldCustomerName = "customer_name"
	FieldItemName     = "item_name"
	FieldQuantity     = "quantity"
	FieldTotalPrice   = "total_price"
)

type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindMoney
)

// Rule describes how a single order field is checked.
// String rules use MaxLength and Pattern, numeric rules use Min and Max.
type Rule struct {
	Kind      Kind
	MaxLength int
	Pattern   *regexp.Regexp
	Min       decimal.Decimal
	Max       decimal.Decimal
	Message   string
}

// Rules is keyed by field name.
var Rules = map[string]Rule{
	FieldCustomerName: {
		Kind:      KindString,
		MaxLength: 100,
		Pattern:   regexp.MustCompile(`^[a-zA-Z0-9\s.]+$`),
		Message:   "Customer name can only have letters, numbers, spaces and periods",
	},
	FieldItemName: {
		Kind:      KindString,
		MaxLength: 200,
		Pattern:   regexp.MustCompile(`^[a-zA-Z0-9\s'"]+$`),
		Message:   "Item name can only have letters, numbers, spaces, and quotes",
	},
	FieldQuantity: {
		Kind:    KindInteger,
		Min:     decimal.NewFromInt(1),
		Max:     decimal.NewFromInt(1000),
		Message: "Quantity must be between 1 and 1000",
	},
	FieldTotalPrice: {
		Kind:    KindMoney,
		Min:     decimal.New(1, -2),
		Max:     decimal.NewFromInt(1_000_000),
		Message: "Total price must be between 0.01 and 1,000,000.00",
	},
}

// RequiredFields is also the order in which fields are checked and reported.
var RequiredFields = []string{FieldCustomerName, FieldItemName, FieldQuantity, FieldTotalPrice}
