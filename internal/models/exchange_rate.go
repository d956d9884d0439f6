package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate mirrors a row of the exchange_rates table. The
// (currency_id, rate_date) pair is covered by a unique index.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"` // Primary key (UUID)
	CurrencyID     string          `db:"currency_id"`      // FK -> currencies.currency_id
	Rate           decimal.Decimal `db:"rate"`
	RateDate       time.Time       `db:"rate_date"`
	Source         string          `db:"source"`
	Provider       string          `db:"provider"`
	Notes          string          `db:"notes"`
	AuditFields
}
