package services

import (
	"context"
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/finbase/currency_exchange_app/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRateByID retrieves a rate by its opaque identifier.
	GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// GetLatestRateAsOf retrieves the most recent rate for the currency whose
	// effective date does not exceed asOf.
	GetLatestRateAsOf(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rates matching the request plus the total count.
	ListExchangeRates(ctx context.Context, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new dated rate for a currency.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRate applies the mutable fields (rate, source, provider, notes).
	UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error)

	// DeleteExchangeRate removes a rate after checking transactional usage.
	DeleteExchangeRate(ctx context.Context, rateID string) error

	// EnsureRateExists seeds a 1.0 placeholder rate dated today for the
	// currency unless it is the base currency or already has a rate.
	// Idempotent; safe to call after creation and after every activation.
	EnsureRateExists(ctx context.Context, currencyID string, actorUserID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
