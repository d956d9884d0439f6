package services

import (
	"context"
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvc converts monetary amounts between currencies, pivoting
// through the base currency when neither side is the base.
type ConversionSvc interface {
	// Convert converts amount from one currency to another as of the given
	// date. Pure read-side computation, no writes.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*domain.ConversionResult, error)
}
