package mapping

import (
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/finbase/currency_exchange_app/internal/models"
)

// ToDomainCompanySettings converts a model CompanySettings to a domain CompanySettings
func ToDomainCompanySettings(m models.CompanySettings) domain.CompanySettings {
	return domain.CompanySettings{
		CompanySettingsID: m.CompanySettingsID,
		BaseCurrencyID:    m.BaseCurrencyID,
		BaseCurrencyCode:  domain.CurrencyCode(m.BaseCurrencyCode),
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
