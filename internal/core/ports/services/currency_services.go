package services

import (
	"context"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/finbase/currency_exchange_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a currency by its opaque identifier.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code (case-insensitive).
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves currencies matching the request plus the total count.
	ListCurrencies(ctx context.Context, req dto.ListCurrenciesRequest) ([]domain.Currency, int, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency registers a new currency and seeds its placeholder rate
	// when it is not the base currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrency applies the provided fields only. A false->true
	// activation transition re-seeds a missing rate.
	UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error)

	// DeactivateCurrency soft-deactivates a currency. Rejected while the
	// currency is the base currency or still owns rate rows.
	DeactivateCurrency(ctx context.Context, currencyID string, updaterUserID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
