package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	CurrencyRepo        CurrencyRepositoryWithTx
	ExchangeRateRepo    ExchangeRateRepositoryWithTx
	CompanySettingsRepo CompanySettingsRepository
	ReferenceChecker    ReferenceChecker
}
