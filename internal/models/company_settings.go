package models

// CompanySettings mirrors a row of the company_settings table. Only the
// base-currency pointer is owned by this service; the rest of the record
// belongs to the company-configuration collaborator.
type CompanySettings struct {
	CompanySettingsID string `db:"company_settings_id"`
	BaseCurrencyID    string `db:"base_currency_id"`   // Nullable on legacy rows
	BaseCurrencyCode  string `db:"base_currency_code"` // Nullable
	IsActive          bool   `db:"is_active"`
	AuditFields
}
