package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
)

// BaseCurrencyService resolves the system's pivot currency from the company
// configuration, with a legacy code fallback and a configured default.
type BaseCurrencyService struct {
	currencyRepo portsrepo.CurrencyReader
	settingsRepo portsrepo.CompanySettingsRepository
	fallbackCode domain.CurrencyCode
}

// NewBaseCurrencyService creates a new BaseCurrencyService. fallbackCode is
// consulted last in the resolution chain; pass "" to disable the fallback.
func NewBaseCurrencyService(
	currencyRepo portsrepo.CurrencyReader,
	settingsRepo portsrepo.CompanySettingsRepository,
	fallbackCode domain.CurrencyCode,
) *BaseCurrencyService {
	return &BaseCurrencyService{
		currencyRepo: currencyRepo,
		settingsRepo: settingsRepo,
		fallbackCode: fallbackCode,
	}
}

// GetBaseCurrency resolves the base currency. Resolution order: the settings
// pointer by ID, the legacy settings code, the configured fallback code.
// Returns (nil, nil) when nothing resolves; converting callers must treat
// that as a business-rule violation.
func (s *BaseCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	settings, err := s.settingsRepo.GetActiveCompanySettings(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read company settings: %w", err)
	}

	if settings != nil && settings.BaseCurrencyID != "" {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, settings.BaseCurrencyID)
		if err == nil {
			return currency, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve base currency by id: %w", err)
		}
		// Dangling pointer, fall through to the code.
	}

	if settings != nil && settings.BaseCurrencyCode != "" {
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, settings.BaseCurrencyCode)
		if err == nil {
			return currency, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve base currency by code: %w", err)
		}
	}

	if s.fallbackCode != "" {
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, s.fallbackCode)
		if err == nil {
			return currency, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve fallback base currency: %w", err)
		}
	}

	return nil, nil
}

// SetBaseCurrency points the active company configuration at the currency
// with the given code. Historical rates are not rewritten.
func (s *BaseCurrencyService) SetBaseCurrency(ctx context.Context, rawCode string, updaterUserID string) (*domain.Currency, error) {
	code, err := domain.NewCurrencyCode(rawCode)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency '%s' not found", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to resolve currency '%s': %w", code, err)
	}

	if _, err := s.settingsRepo.GetActiveCompanySettings(ctx); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active company configuration to hold the base currency", apperrors.ErrBusinessRule)
		}
		return nil, fmt.Errorf("failed to read company settings: %w", err)
	}

	if err := s.settingsRepo.SetBaseCurrency(ctx, currency.CurrencyID, currency.Code, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to persist base currency pointer: %w", err)
	}

	return currency, nil
}
