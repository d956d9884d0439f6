package services

import (
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/finbase/currency_exchange_app/internal/core/ports/services"
	"github.com/finbase/currency_exchange_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	refChecker := repos.ReferenceChecker
	if refChecker == nil {
		refChecker = portsrepo.NoopReferenceChecker{}
	}

	baseCurrency := NewBaseCurrencyService(
		repos.CurrencyRepo,
		repos.CompanySettingsRepo,
		domain.CurrencyCode(cfg.DefaultBaseCurrencyCode),
	)

	exchangeRate := NewExchangeRateService(
		repos.ExchangeRateRepo,
		repos.CurrencyRepo,
		baseCurrency,
		refChecker,
	)

	currency := NewCurrencyService(
		repos.CurrencyRepo,
		repos.ExchangeRateRepo,
		baseCurrency,
		refChecker,
	)
	currency.SetRateSeeder(exchangeRate)

	conversion := NewConversionService(exchangeRate, baseCurrency)

	return &portssvc.ServiceContainer{
		Currency:     currency,
		ExchangeRate: exchangeRate,
		BaseCurrency: baseCurrency,
		Conversion:   conversion,
	}
}

// Compile-time interface checks.
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.BaseCurrencySvc       = (*BaseCurrencyService)(nil)
	_ portssvc.ConversionSvc         = (*ConversionService)(nil)
)
