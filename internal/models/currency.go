package models

// Currency mirrors a row of the currencies table.
type Currency struct {
	CurrencyID    string `db:"currency_id"` // Primary key (UUID)
	Code          string `db:"code"`        // Unique, always uppercase
	Name          string `db:"name"`
	Symbol        string `db:"symbol"`
	CountryCode   string `db:"country_code"`
	Notes         string `db:"notes"`
	DecimalPlaces int    `db:"decimal_places"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
