package dto

import (
	"time"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the payload for a currency conversion.
type ConvertRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	FromCode string          `json:"fromCode" binding:"required,currencycode"`
	ToCode   string          `json:"toCode" binding:"required,currencycode"`
	AsOf     *time.Time      `json:"asOf"` // defaults to today
}

// ConvertResponse defines the conversion result returned to the caller.
// ConvertedAmount is not rounded to the target currency's decimal places;
// presentation rounding belongs to the caller.
type ConvertResponse struct {
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	RateSource      string          `json:"rateSource"`
}

// ToConvertResponse converts a domain.ConversionResult to ConvertResponse DTO
func ToConvertResponse(res *domain.ConversionResult) ConvertResponse {
	return ConvertResponse{
		ConvertedAmount: res.ConvertedAmount,
		RateUsed:        res.RateUsed,
		RateSource:      res.RateSource,
	}
}
