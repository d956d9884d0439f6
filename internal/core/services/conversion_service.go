package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portssvc "github.com/finbase/currency_exchange_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ConversionService converts amounts between currencies, pivoting through the
// base currency. Pure read path: it only composes the rate store and the
// base-currency resolver.
type ConversionService struct {
	rates        portssvc.ExchangeRateReaderSvc
	baseCurrency portssvc.BaseCurrencySvc
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rates portssvc.ExchangeRateReaderSvc, baseCurrency portssvc.BaseCurrencySvc) *ConversionService {
	return &ConversionService{
		rates:        rates,
		baseCurrency: baseCurrency,
	}
}

// Convert converts amount from one currency to another as of the given date.
// A stored rate is the number of currency units per one base unit, so
// converting into the base divides and converting out of the base multiplies.
// Between two non-base currencies the amount is routed through the base in
// two steps; the reported RateUsed is informational and is not what produced
// the amount (a single division would compound rounding differently).
func (s *ConversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*domain.ConversionResult, error) {
	from, err := domain.NewCurrencyCode(fromCode)
	if err != nil {
		return nil, err
	}
	to, err := domain.NewCurrencyCode(toCode)
	if err != nil {
		return nil, err
	}

	// Identity: no base resolution, no rate lookups.
	if from == to {
		return &domain.ConversionResult{
			ConvertedAmount: amount,
			RateUsed:        decimal.NewFromInt(1),
			RateSource:      domain.RateSourceSameCurrency,
		}, nil
	}

	base, err := s.baseCurrency.GetBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency for conversion: %w", err)
	}
	if base == nil {
		return nil, fmt.Errorf("%w: no base currency configured; cannot convert %s to %s", apperrors.ErrBusinessRule, from, to)
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	switch {
	case from == base.Code:
		// Base -> other: multiply by the target currency's rate.
		toRate, err := s.rates.GetLatestRateAsOf(ctx, to.String(), asOf)
		if err != nil {
			return nil, err
		}
		return &domain.ConversionResult{
			ConvertedAmount: amount.Mul(toRate.Rate).Round(domain.RatePrecision),
			RateUsed:        toRate.Rate,
			RateSource:      toRate.Source,
		}, nil

	case to == base.Code:
		// Other -> base: divide by the source currency's rate.
		fromRate, err := s.rates.GetLatestRateAsOf(ctx, from.String(), asOf)
		if err != nil {
			return nil, err
		}
		return &domain.ConversionResult{
			ConvertedAmount: amount.DivRound(fromRate.Rate, domain.RatePrecision),
			RateUsed:        fromRate.Rate,
			RateSource:      fromRate.Source,
		}, nil

	default:
		// Triangulation: other -> base -> other.
		fromRate, err := s.rates.GetLatestRateAsOf(ctx, from.String(), asOf)
		if err != nil {
			return nil, err
		}
		toRate, err := s.rates.GetLatestRateAsOf(ctx, to.String(), asOf)
		if err != nil {
			return nil, err
		}

		baseAmount := amount.DivRound(fromRate.Rate, domain.RatePrecision)
		converted := baseAmount.Mul(toRate.Rate).Round(domain.RatePrecision)

		return &domain.ConversionResult{
			ConvertedAmount: converted,
			RateUsed:        fromRate.Rate.DivRound(toRate.Rate, domain.RatePrecision),
			RateSource:      domain.RateSourceTriangulated,
		}, nil
	}
}
