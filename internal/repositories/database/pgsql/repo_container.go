package pgsql

import (
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories. The reference
// checker defaults to the no-op implementation until a transactional
// collaborator supplies a real one.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:        newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:    newPgxExchangeRateRepository(dbPool),
		CompanySettingsRepo: newPgxCompanySettingsRepository(dbPool),
		ReferenceChecker:    portsrepo.NoopReferenceChecker{},
	}
}
