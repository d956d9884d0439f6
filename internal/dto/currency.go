package dto

import (
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a new currency.
type CreateCurrencyRequest struct {
	Code          string `json:"code" binding:"required,currencycode"`
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol"`
	CountryCode   string `json:"countryCode" binding:"omitempty,len=2,alpha"`
	Notes         string `json:"notes"`
	DecimalPlaces *int   `json:"decimalPlaces" binding:"omitempty,gte=0,lte=8"` // defaults to 2
	IsActive      *bool  `json:"isActive"`                                      // defaults to true
}

// UpdateCurrencyRequest defines the partial metadata edit payload. Only
// provided fields are applied; the code is immutable and has no field here.
type UpdateCurrencyRequest struct {
	Name          *string `json:"name"`
	Symbol        *string `json:"symbol"`
	CountryCode   *string `json:"countryCode" binding:"omitempty,len=2,alpha"`
	Notes         *string `json:"notes"`
	DecimalPlaces *int    `json:"decimalPlaces" binding:"omitempty,gte=0,lte=8"`
	IsActive      *bool   `json:"isActive"`
}

// ListCurrenciesRequest defines the query parameters for the currency listing.
type ListCurrenciesRequest struct {
	Code            string `form:"code"`
	Name            string `form:"name"`
	IsActive        *bool  `form:"isActive"`
	CountryCode     string `form:"countryCode"`
	IncludeInactive bool   `form:"includeInactive"`
	Skip            int    `form:"skip" binding:"omitempty,gte=0"`
	Limit           int    `form:"limit" binding:"omitempty,gte=1,lte=500"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string    `json:"currencyID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol,omitempty"`
	CountryCode   string    `json:"countryCode,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	DecimalPlaces int       `json:"decimalPlaces"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListCurrenciesResponse wraps a page of currencies with the total count.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
	Total      int                `json:"total"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    curr.CurrencyID,
		Code:          curr.Code.String(),
		Name:          curr.Name,
		Symbol:        curr.Symbol,
		CountryCode:   curr.CountryCode,
		Notes:         curr.Notes,
		DecimalPlaces: curr.DecimalPlaces,
		IsActive:      curr.IsActive,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrenciesResponse converts a page of domain currencies plus total
// count to the listing DTO.
func ToListCurrenciesResponse(currencies []domain.Currency, total int) ListCurrenciesResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return ListCurrenciesResponse{Currencies: res, Total: total}
}
