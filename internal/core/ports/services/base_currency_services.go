package services

import (
	"context"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// BaseCurrencySvc resolves and mutates the system's pivot currency.
type BaseCurrencySvc interface {
	// GetBaseCurrency returns the configured base currency. A (nil, nil)
	// return means no base currency is configured anywhere; callers that
	// need one must treat that as a business-rule failure.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// SetBaseCurrency points the active company configuration at the
	// currency with the given code.
	SetBaseCurrency(ctx context.Context, code string, updaterUserID string) (*domain.Currency, error)
}
