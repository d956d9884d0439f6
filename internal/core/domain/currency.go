package domain

import (
	"fmt"
	"strings"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
)

// MaxDecimalPlaces is the largest minor-unit precision a currency may declare.
const MaxDecimalPlaces = 8

// CurrencyCode is a normalized 3-letter uppercase ISO-style currency code.
// Construct it with NewCurrencyCode so every call site gets the same
// trimming/uppercasing instead of repeating strings.ToUpper ad hoc.
type CurrencyCode string

// NewCurrencyCode normalizes and validates a raw currency code string.
func NewCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be exactly 3 letters, got %q", apperrors.ErrValidation, raw)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code must be alphabetic, got %q", apperrors.ErrValidation, raw)
		}
	}
	return CurrencyCode(code), nil
}

func (c CurrencyCode) String() string {
	return string(c)
}

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyID    string       `json:"currencyID"` // Primary key (UUID)
	Code          CurrencyCode `json:"code"`       // Natural key (e.g. "USD"), immutable
	Name          string       `json:"name"`       // e.g. "US Dollar"
	Symbol        string       `json:"symbol"`     // e.g. "$", optional
	CountryCode   string       `json:"countryCode"` // 2-letter, optional
	Notes         string       `json:"notes"`
	DecimalPlaces int          `json:"decimalPlaces"` // Minor-unit precision, 0..8
	IsActive      bool         `json:"isActive"`
	AuditFields
}

// ValidateDecimalPlaces checks the [0, MaxDecimalPlaces] range.
func ValidateDecimalPlaces(dp int) error {
	if dp < 0 || dp > MaxDecimalPlaces {
		return fmt.Errorf("%w: decimalPlaces must be between 0 and %d, got %d", apperrors.ErrValidation, MaxDecimalPlaces, dp)
	}
	return nil
}
