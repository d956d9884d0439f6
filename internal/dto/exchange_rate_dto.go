package dto

import (
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	CurrencyID string          `json:"currencyID" binding:"required,uuid"`
	Rate       decimal.Decimal `json:"rate" binding:"required"`
	RateDate   time.Time       `json:"rateDate" binding:"required"`
	Source     string          `json:"source"` // defaults to "manual"
	Provider   string          `json:"provider"`
	Notes      string          `json:"notes"`
}

// UpdateExchangeRateRequest defines the partial edit payload. CurrencyID and
// RateDate are immutable and have no fields here.
type UpdateExchangeRateRequest struct {
	Rate     *decimal.Decimal `json:"rate"`
	Source   *string          `json:"source"`
	Provider *string          `json:"provider"`
	Notes    *string          `json:"notes"`
}

// ListExchangeRatesRequest defines the query parameters for the rate listing.
type ListExchangeRatesRequest struct {
	CurrencyCode              string     `form:"currencyCode"`
	DateFrom                  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo                    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Source                    string     `form:"source"`
	Provider                  string     `form:"provider"`
	IncludeInactiveCurrencies bool       `form:"includeInactiveCurrencies"`
	Skip                      int        `form:"skip" binding:"omitempty,gte=0"`
	Limit                     int        `form:"limit" binding:"omitempty,gte=1,lte=500"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyID     string          `json:"currencyID"`
	Rate           decimal.Decimal `json:"rate"`
	RateDate       time.Time       `json:"rateDate"`
	Source         string          `json:"source"`
	Provider       string          `json:"provider,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ListExchangeRatesResponse wraps a page of rates with the total count.
type ListExchangeRatesResponse struct {
	ExchangeRates []ExchangeRateResponse `json:"exchangeRates"`
	Total         int                    `json:"total"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyID:     rate.CurrencyID,
		Rate:           rate.Rate,
		RateDate:       rate.RateDate,
		Source:         rate.Source,
		Provider:       rate.Provider,
		Notes:          rate.Notes,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRatesResponse converts a page of domain rates plus total count
// to the listing DTO.
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, total int) ListExchangeRatesResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		res[i] = ToExchangeRateResponse(&rate)
	}
	return ListExchangeRatesResponse{ExchangeRates: res, Total: total}
}
