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
	"github.com/shopspring/decimal"
)

const defaultPageSize = 50

// ExchangeRateService provides business logic for dated exchange rates.
type ExchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	baseCurrency portssvc.BaseCurrencySvc
	refChecker   portsrepo.ReferenceChecker
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	baseCurrency portssvc.BaseCurrencySvc,
	refChecker portsrepo.ReferenceChecker,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		baseCurrency: baseCurrency,
		refChecker:   refChecker,
	}
}

// today returns the current calendar date, UTC, without a time component.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func validateRateValue(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrValidation, rate)
	}
	if domain.ExceedsRatePrecision(rate) {
		return fmt.Errorf("%w: exchange rate precision exceeds %d fractional digits", apperrors.ErrValidation, domain.RatePrecision)
	}
	return nil
}

// CreateExchangeRate handles the creation of a new dated rate. The
// (currency_id, rate_date) uniqueness is enforced by the storage layer, so
// concurrent creates for the same pair race safely: one wins, the other
// observes ErrDuplicate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if err := validateRateValue(req.Rate); err != nil {
		return nil, err
	}

	rateDate := req.RateDate.UTC().Truncate(24 * time.Hour)
	if rateDate.After(today()) {
		return nil, fmt.Errorf("%w: rate date %s must not be in the future", apperrors.ErrValidation, rateDate.Format("2006-01-02"))
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency '%s' not found", apperrors.ErrNotFound, req.CurrencyID)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", req.CurrencyID, err)
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = domain.RateSourceManual
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyID:     currency.CurrencyID,
		Rate:           req.Rate,
		RateDate:       rateDate,
		Source:         source,
		Provider:       req.Provider,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a rate for currency '%s' on %s already exists", apperrors.ErrDuplicate, currency.Code, rateDate.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetExchangeRateByID retrieves a rate by its opaque identifier.
func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// GetLatestRateAsOf retrieves the rate for the currency with the greatest
// effective date not after asOf. Every conversion depends on this read path.
func (s *ExchangeRateService) GetLatestRateAsOf(ctx context.Context, currencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	code, err := domain.NewCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = today()
	}

	rate, err := s.rateRepo.FindLatestRateAsOf(ctx, code, asOf.UTC().Truncate(24*time.Hour))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for currency '%s' on or before %s", apperrors.ErrNotFound, code, asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find latest rate for '%s': %w", code, err)
	}
	return rate, nil
}

// ListExchangeRates retrieves rates matching the request ordered by rate date
// descending then currency code ascending, plus the total count.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, int, error) {
	params := portsrepo.ListExchangeRatesParams{
		CurrencyCodeContains:      req.CurrencyCode,
		DateFrom:                  req.DateFrom,
		DateTo:                    req.DateTo,
		SourceContains:            req.Source,
		ProviderContains:          req.Provider,
		IncludeInactiveCurrencies: req.IncludeInactiveCurrencies,
		Skip:                      req.Skip,
		Limit:                     req.Limit,
	}
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}

	rates, total, err := s.rateRepo.ListExchangeRates(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, total, nil
}

// UpdateExchangeRate applies the mutable fields. CurrencyID and RateDate are
// immutable after creation.
func (s *ExchangeRateService) UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find exchange rate for update: %w", err)
	}

	if req.Rate != nil {
		if err := validateRateValue(*req.Rate); err != nil {
			return nil, err
		}
		rate.Rate = *req.Rate
	}
	if req.Source != nil {
		rate.Source = *req.Source
	}
	if req.Provider != nil {
		rate.Provider = *req.Provider
	}
	if req.Notes != nil {
		rate.Notes = *req.Notes
	}

	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = updaterUserID

	if err := s.rateRepo.UpdateExchangeRate(ctx, *rate); err != nil {
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}
	return rate, nil
}

// DeleteExchangeRate removes a rate. Deletion is blocked while transactional
// records still reference the rate.
func (s *ExchangeRateService) DeleteExchangeRate(ctx context.Context, rateID string) error {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		return fmt.Errorf("failed to find exchange rate for deletion: %w", err)
	}

	used, err := s.refChecker.HasUsages(ctx, rate.ExchangeRateID)
	if err != nil {
		return fmt.Errorf("failed to check usages for rate '%s': %w", rate.ExchangeRateID, err)
	}
	if used {
		return fmt.Errorf("%w: exchange rate '%s' is referenced by transactional records", apperrors.ErrBusinessRule, rate.ExchangeRateID)
	}

	if err := s.rateRepo.DeleteExchangeRate(ctx, rate.ExchangeRateID); err != nil {
		return fmt.Errorf("failed to delete exchange rate in service: %w", err)
	}
	return nil
}

// EnsureRateExists seeds a neutral 1.0 rate dated today for a currency that
// has none, unless it is the base currency. Idempotent: an existing rate and
// a lost duplicate race are both treated as success, which is also the
// self-healing path when the create-currency/seed-rate pair is interrupted.
func (s *ExchangeRateService) EnsureRateExists(ctx context.Context, currencyID string, actorUserID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("failed to find currency '%s' for rate seeding: %w", currencyID, err)
	}

	base, err := s.baseCurrency.GetBaseCurrency(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve base currency for rate seeding: %w", err)
	}
	if base != nil && base.CurrencyID == currency.CurrencyID {
		// The base currency has no rate relative to itself.
		return nil
	}

	count, err := s.rateRepo.CountRatesForCurrency(ctx, currency.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to count rates for currency '%s': %w", currency.Code, err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	seed := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyID:     currency.CurrencyID,
		Rate:           decimal.NewFromInt(1),
		RateDate:       today(),
		Source:         domain.RateSourceSystem,
		Provider:       domain.DefaultRateProvider,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, seed); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another writer seeded the same date concurrently.
			return nil
		}
		return fmt.Errorf("failed to seed rate for currency '%s': %w", currency.Code, err)
	}
	return nil
}
