package repositories

import (
	"context"
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// ListExchangeRatesParams carries the conjunction of list filters plus paging.
type ListExchangeRatesParams struct {
	CurrencyCodeContains      string // case-insensitive substring over the owning currency's code
	DateFrom                  *time.Time
	DateTo                    *time.Time
	SourceContains            string
	ProviderContains          string
	IncludeInactiveCurrencies bool
	Skip                      int
	Limit                     int
}

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a rate by its opaque identifier.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindLatestRateAsOf retrieves the rate for the given currency with the
	// greatest rate_date not after asOf. Returns apperrors.ErrNotFound when
	// no such rate exists.
	FindLatestRateAsOf(ctx context.Context, code domain.CurrencyCode, asOf time.Time) (*domain.ExchangeRate, error)

	// CountRatesForCurrency reports how many rate rows reference the currency.
	CountRatesForCurrency(ctx context.Context, currencyID string) (int, error)

	// ListExchangeRates retrieves rates matching params ordered by rate_date
	// descending then currency code ascending, plus the total count.
	ListExchangeRates(ctx context.Context, params ListExchangeRatesParams) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new rate. Returns apperrors.ErrDuplicate
	// when a rate already exists for the same (currency_id, rate_date).
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateExchangeRate persists the mutable fields (rate, source, provider,
	// notes) of an existing rate.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeleteExchangeRate removes a rate row.
	DeleteExchangeRate(ctx context.Context, rateID string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
