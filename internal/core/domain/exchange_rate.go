package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the fixed number of fractional digits allowed on a rate.
const RatePrecision = 6

// Rate source markers. Anything else is free text supplied by the operator.
const (
	RateSourceManual = "manual"
	RateSourceSystem = "system"
)

// DefaultRateProvider is recorded on auto-seeded placeholder rates.
const DefaultRateProvider = "default"

// ExchangeRate is a dated rate for one currency, expressed against the base
// currency: a stored rate is the number of currency units per one base unit.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary key (UUID)
	CurrencyID     string          `json:"currencyID"`     // FK -> Currency.CurrencyID, immutable
	Rate           decimal.Decimal `json:"rate"`           // Strictly positive, <= 6 fractional digits
	RateDate       time.Time       `json:"rateDate"`       // Effective date, immutable
	Source         string          `json:"source"`         // "manual" unless stated otherwise
	Provider       string          `json:"provider"`
	Notes          string          `json:"notes"`
	AuditFields
}

// ExceedsRatePrecision reports whether d carries more than RatePrecision
// significant fractional digits. Trailing zeros do not count.
func ExceedsRatePrecision(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(RatePrecision))
}
