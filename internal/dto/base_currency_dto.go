package dto

// SetBaseCurrencyRequest defines the payload for pointing the company
// configuration at a new base currency.
type SetBaseCurrencyRequest struct {
	Code string `json:"code" binding:"required,currencycode"`
}
