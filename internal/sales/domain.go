package sales

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidSale is returned when a sale record breaks the data model constraints.
var ErrInvalidSale = errors.New("invalid sale")

// Status is the lifecycle state reported for a sale.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
)

// Money is a decimal amount rendered in JSON as a number with two fraction digits.
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal literal such as "129.50".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Sale represents a sales record. Field order is the JSON field order.
type Sale struct {
	ID       string `json:"id" validate:"required"`
	Total    Money  `json:"total" validate:"-"`
	Currency string `json:"currency" validate:"required,iso4217"`
	Status   Status `json:"status" validate:"required,oneof=COMPLETED PENDING CANCELLED"`
}

var validate = validator.New()

// Validate checks the record against the data model constraints.
// Struct tags cover id, currency and status; the sign of Total is checked separately.
func (s Sale) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSale, s.ID, err)
	}
	if s.Total.IsNegative() {
		return fmt.Errorf("%w: %s has negative total %s", ErrInvalidSale, s.ID, s.Total.String())
	}
	return nil
}
