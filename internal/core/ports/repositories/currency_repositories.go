package repositories

import (
	"context"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// ListCurrenciesParams carries the conjunction of list filters plus paging.
// Zero values mean "no filter"; IncludeInactive=false keeps the default of
// hiding deactivated currencies.
type ListCurrenciesParams struct {
	CodeContains    string // case-insensitive substring
	NameContains    string // case-insensitive substring
	IsActive        *bool  // exact match when set
	CountryCode     string // exact match
	IncludeInactive bool
	Skip            int
	Limit           int
}

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by its opaque identifier.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency by its 3-letter code (case-insensitive).
	FindCurrencyByCode(ctx context.Context, code domain.CurrencyCode) (*domain.Currency, error)

	// ListCurrencies retrieves currencies matching params ordered by code
	// ascending, plus the total count before paging.
	ListCurrencies(ctx context.Context, params ListCurrenciesParams) ([]domain.Currency, int, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. Returns apperrors.ErrDuplicate
	// when the code is already registered.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency persists mutable fields of an existing currency.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
