package repositories

import (
	"context"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// CompanySettingsRepository is the narrow view of the company-configuration
// collaborator this core depends on: reading and writing the base-currency
// pointer. The rest of the settings record is owned elsewhere.
type CompanySettingsRepository interface {
	// GetActiveCompanySettings returns the active settings row, or
	// apperrors.ErrNotFound when none exists.
	GetActiveCompanySettings(ctx context.Context) (*domain.CompanySettings, error)

	// SetBaseCurrency persists both the currency ID and, for legacy
	// compatibility, its code on the active settings row.
	SetBaseCurrency(ctx context.Context, currencyID string, code domain.CurrencyCode, updaterUserID string) error
}
