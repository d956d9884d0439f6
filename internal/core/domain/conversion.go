package domain

import "github.com/shopspring/decimal"

// Rate sources reported by the conversion engine in addition to the source of
// the underlying rate row.
const (
	RateSourceSameCurrency = "same_currency"
	RateSourceTriangulated = "triangulated"
)

// ConversionResult is the outcome of converting an amount between two
// currencies. RateUsed is reported for transparency; for triangulated
// conversions the two-step amount is authoritative, not amount*RateUsed.
type ConversionResult struct {
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	RateSource      string          `json:"rateSource"`
}
