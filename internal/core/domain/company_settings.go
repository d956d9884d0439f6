package domain

// CompanySettings is the slice of the external company-configuration record
// this core reads and writes: the base-currency pointer. BaseCurrencyCode is
// kept alongside the ID for compatibility with records written before the ID
// column existed.
type CompanySettings struct {
	CompanySettingsID string       `json:"companySettingsID"`
	BaseCurrencyID    string       `json:"baseCurrencyID"`   // May be empty on legacy records
	BaseCurrencyCode  CurrencyCode `json:"baseCurrencyCode"` // May be empty
	IsActive          bool         `json:"isActive"`
	AuditFields
}
