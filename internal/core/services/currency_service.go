package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/currency_exchange_app/internal/core/ports/services"
	"github.com/finbase/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
)

const defaultDecimalPlaces = 2

// CurrencyService provides business logic for the currency registry.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateReader
	baseCurrency portssvc.BaseCurrencySvc
	refChecker   portsrepo.ReferenceChecker
	rateSeeder   portssvc.ExchangeRateWriterSvc
}

// NewCurrencyService creates a new CurrencyService. The rate seeder is wired
// afterwards via SetRateSeeder because the exchange-rate service in turn needs
// the currency repository.
func NewCurrencyService(
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	rateRepo portsrepo.ExchangeRateReader,
	baseCurrency portssvc.BaseCurrencySvc,
	refChecker portsrepo.ReferenceChecker,
) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		baseCurrency: baseCurrency,
		refChecker:   refChecker,
	}
}

// SetRateSeeder wires the exchange-rate service used to backfill placeholder
// rates on creation and activation.
func (s *CurrencyService) SetRateSeeder(seeder portssvc.ExchangeRateWriterSvc) {
	s.rateSeeder = seeder
}

// CreateCurrency registers a new currency. Seeding of the placeholder rate
// happens after the currency row is committed; a crash between the two leaves
// a rate-less currency that EnsureRateExists self-heals on the next
// activation.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code, err := domain.NewCurrencyCode(req.Code)
	if err != nil {
		return nil, err
	}

	decimalPlaces := defaultDecimalPlaces
	if req.DecimalPlaces != nil {
		decimalPlaces = *req.DecimalPlaces
	}
	if err := domain.ValidateDecimalPlaces(decimalPlaces); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyID:    uuid.NewString(),
		Code:          code,
		Name:          strings.TrimSpace(req.Name),
		Symbol:        req.Symbol,
		CountryCode:   strings.ToUpper(req.CountryCode),
		Notes:         req.Notes,
		DecimalPlaces: decimalPlaces,
		IsActive:      isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: currency code '%s' already registered", apperrors.ErrDuplicate, code)
		}
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	if currency.IsActive && s.rateSeeder != nil {
		if err := s.rateSeeder.EnsureRateExists(ctx, currency.CurrencyID, creatorUserID); err != nil {
			return nil, fmt.Errorf("currency '%s' created but failed to seed initial rate: %w", code, err)
		}
	}

	return &currency, nil
}

// GetCurrencyByID retrieves a currency by its opaque identifier.
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by id in service: %w", err)
	}
	return currency, nil
}

// GetCurrencyByCode retrieves a currency by its 3-letter code, case-insensitive.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, rawCode string) (*domain.Currency, error) {
	code, err := domain.NewCurrencyCode(rawCode)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves currencies matching the request, ordered by code
// ascending, plus the total count before pagination.
func (s *CurrencyService) ListCurrencies(ctx context.Context, req dto.ListCurrenciesRequest) ([]domain.Currency, int, error) {
	params := portsrepo.ListCurrenciesParams{
		CodeContains:    req.Code,
		NameContains:    req.Name,
		IsActive:        req.IsActive,
		CountryCode:     strings.ToUpper(req.CountryCode),
		IncludeInactive: req.IncludeInactive,
		Skip:            req.Skip,
		Limit:           req.Limit,
	}
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}

	currencies, total, err := s.currencyRepo.ListCurrencies(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	return currencies, total, nil
}

// UpdateCurrency applies only the provided fields. The code is immutable.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency for update: %w", err)
	}

	if req.Name != nil {
		currency.Name = strings.TrimSpace(*req.Name)
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.CountryCode != nil {
		currency.CountryCode = strings.ToUpper(*req.CountryCode)
	}
	if req.Notes != nil {
		currency.Notes = *req.Notes
	}
	if req.DecimalPlaces != nil {
		if err := domain.ValidateDecimalPlaces(*req.DecimalPlaces); err != nil {
			return nil, err
		}
		currency.DecimalPlaces = *req.DecimalPlaces
	}

	wasActive := currency.IsActive
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}

	// A true->false transition is a deactivation and obeys the same rules as
	// the delete endpoint.
	if wasActive && !currency.IsActive {
		if err := s.checkDeactivationAllowed(ctx, currency); err != nil {
			return nil, err
		}
	}

	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency in service: %w", err)
	}

	if !wasActive && currency.IsActive && s.rateSeeder != nil {
		if err := s.rateSeeder.EnsureRateExists(ctx, currency.CurrencyID, updaterUserID); err != nil {
			return nil, fmt.Errorf("currency '%s' activated but failed to backfill rate: %w", currency.Code, err)
		}
	}

	return currency, nil
}

// checkDeactivationAllowed enforces the rules that keep a currency active:
// not the base currency, no rate rows, no transactional references.
func (s *CurrencyService) checkDeactivationAllowed(ctx context.Context, currency *domain.Currency) error {
	base, err := s.baseCurrency.GetBaseCurrency(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve base currency: %w", err)
	}
	if base != nil && base.CurrencyID == currency.CurrencyID {
		return fmt.Errorf("%w: cannot deactivate the base currency '%s'", apperrors.ErrBusinessRule, currency.Code)
	}

	rateCount, err := s.rateRepo.CountRatesForCurrency(ctx, currency.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to count rates for currency '%s': %w", currency.Code, err)
	}
	if rateCount > 0 {
		return fmt.Errorf("%w: currency '%s' has %d exchange rate(s); remove them first", apperrors.ErrBusinessRule, currency.Code, rateCount)
	}

	used, err := s.refChecker.HasUsages(ctx, currency.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to check usages for currency '%s': %w", currency.Code, err)
	}
	if used {
		return fmt.Errorf("%w: currency '%s' is referenced by transactional records", apperrors.ErrBusinessRule, currency.Code)
	}
	return nil
}

// DeactivateCurrency soft-deactivates a currency. The row is kept so rate
// history stays intact.
func (s *CurrencyService) DeactivateCurrency(ctx context.Context, currencyID string, updaterUserID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("failed to find currency for deactivation: %w", err)
	}

	if err := s.checkDeactivationAllowed(ctx, currency); err != nil {
		return err
	}

	currency.IsActive = false
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		return fmt.Errorf("failed to deactivate currency in service: %w", err)
	}
	return nil
}
