package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finbase/currency_exchange_app/internal/core/domain"
)

// RegisterCustomValidators installs the currencycode binding validator on
// gin's validator engine. Must run before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			_, err := domain.NewCurrencyCode(fl.Field().String())
			return err == nil
		})
	}
}
