package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidFormat = "invalid request format"
	MsgBodyRequired  = "request body is required"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	// charset=<field> checks a value against the pattern of that field's rule
	validate.RegisterValidation("charset", func(fl validator.FieldLevel) bool {
		rule, ok := Rules[fl.Param()]
		if !ok || rule.Pattern == nil {
			return false
		}
		return rule.Pattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate checks raw order input and returns the normalized draft.
// On failure the error is *entities.ValidationError with every collected message.
func (v *Validator) Validate(raw any) (entities.OrderDraft, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return entities.OrderDraft{}, entities.NewValidationError(MsgInvalidFormat)
	}

	var missing []string
	for _, field := range RequiredFields {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return entities.OrderDraft{}, entities.NewValidationError(
			"missing required fields: " + strings.Join(missing, ", "),
		)
	}

	var (
		draft entities.OrderDraft
		msgs  []string
	)

	if value, errs := v.checkString(FieldCustomerName, data[FieldCustomerName]); len(errs) > 0 {
		msgs = append(msgs, errs...)
	} else {
		draft.CustomerName = value
	}

	if value, errs := v.checkString(FieldItemName, data[FieldItemName]); len(errs) > 0 {
		msgs = append(msgs, errs...)
	} else {
		draft.ItemName = value
	}

	if value, errs := checkNumber(FieldQuantity, data[FieldQuantity]); len(errs) > 0 {
		msgs = append(msgs, errs...)
	} else {
		draft.Quantity = int(value.IntPart())
	}

	if value, errs := checkNumber(FieldTotalPrice, data[FieldTotalPrice]); len(errs) > 0 {
		msgs = append(msgs, errs...)
	} else {
		draft.TotalPrice = value
	}

	if len(msgs) > 0 {
		return entities.OrderDraft{}, entities.NewValidationError(msgs...)
	}
	return draft, nil
}

func (v *Validator) checkString(field string, raw any) (string, []string) {
	rule := Rules[field]

	s, ok := raw.(string)
	if !ok {
		return "", []string{field + " should be a string"}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", []string{field + " cannot be empty"}
	}

	var errs []string
	if err := v.validate.Var(s, fmt.Sprintf("max=%d", rule.MaxLength)); err != nil {
		errs = append(errs, fmt.Sprintf("%s cannot exceed %d characters", field, rule.MaxLength))
	}
	if err := v.validate.Var(s, "charset="+field); err != nil {
		errs = append(errs, rule.Message)
	}

	return s, errs
}

func checkNumber(field string, raw any) (decimal.Decimal, []string) {
	rule := Rules[field]

	d, ok := toDecimal(raw)
	if ok && rule.Kind == KindInteger && !d.IsInteger() {
		ok = false
	}
	if !ok {
		return decimal.Decimal{}, []string{fmt.Sprintf("invalid %s format", field)}
	}

	if rule.Kind == KindMoney {
		d = d.Round(2)
	}

	if d.LessThan(rule.Min) || d.GreaterThan(rule.Max) {
		return decimal.Decimal{}, []string{rule.Message}
	}
	return d, nil
}

// toDecimal converts numbers and numeric strings. Booleans, nil, NaN and infinities are rejected.
func toDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(strings.TrimSpace(v))
	case float64:
		return floatToDecimal(v)
	case float32:
		return floatToDecimal(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint(uint64(v)), true
	case uint8:
		return fromUint(uint64(v)), true
	case uint16:
		return fromUint(uint64(v)), true
	case uint32:
		return fromUint(uint64(v)), true
	case uint64:
		return fromUint(v), true
	default:
		return decimal.Decimal{}, false
	}
}

// maxExponent bounds scientific notation like "1e999999999", which would be
// expensive to rescale and can never be a valid quantity or price.
const maxExponent = 64

func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return clampExponent(d), true
}

// clampExponent replaces magnitudes beyond 10^maxExponent with 10^(maxExponent+1)
// and nonzero magnitudes below 10^-maxExponent with 10^-(maxExponent+1), keeping
// the sign, so the range check still reports them.
func clampExponent(d decimal.Decimal) decimal.Decimal {
	exp := d.Exponent()
	if exp >= -maxExponent && exp <= maxExponent {
		return d
	}
	if d.IsZero() {
		return decimal.Zero
	}

	sign := int64(d.Sign())
	if exp > maxExponent {
		return decimal.New(sign, maxExponent+1)
	}

	digits := int32(len(new(big.Int).Abs(d.Coefficient()).String()))
	if digits+exp < -maxExponent {
		return decimal.New(sign, -maxExponent-1)
	}
	return d
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func floatToDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return clampExponent(decimal.NewFromFloat(f)), true
}
