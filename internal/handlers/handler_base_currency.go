package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	portssvc "github.com/finbase/currency_exchange_app/internal/core/ports/services"
	"github.com/finbase/currency_exchange_app/internal/dto"
	"github.com/finbase/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// baseCurrencyHandler handles HTTP requests related to the base currency pointer.
type baseCurrencyHandler struct {
	baseCurrencyService portssvc.BaseCurrencySvc
}

// registerBaseCurrencyRoutes registers the base-currency get/set routes.
func registerBaseCurrencyRoutes(rg *gin.RouterGroup, baseCurrencyService portssvc.BaseCurrencySvc) {
	h := &baseCurrencyHandler{baseCurrencyService: baseCurrencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.GET("/base", h.getBaseCurrency)
		currencies.PUT("/base", h.setBaseCurrency)
	}
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Description Resolves the configured base currency, falling back to the legacy code pointer and then USD
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency configured"
// @Failure 500 {object} map[string]string "Failed to resolve base currency"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *baseCurrencyHandler) getBaseCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	base, err := h.baseCurrencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		logger.Error("Failed to resolve base currency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve base currency"})
		return
	}
	if base == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No base currency configured"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(base))
}

// setBaseCurrency godoc
// @Summary Set the base currency
// @Description Points the active company configuration at the currency with the given code
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   base body dto.SetBaseCurrencyRequest true "Base currency code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 422 {object} map[string]string "No active company configuration"
// @Failure 500 {object} map[string]string "Failed to set base currency"
// @Security BearerAuth
// @Router /currencies/base [put]
func (h *baseCurrencyHandler) setBaseCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetBaseCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to set base currency", slog.String("code", req.Code))

	base, err := h.baseCurrencyService.SetBaseCurrency(c.Request.Context(), req.Code, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBusinessRule):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to set base currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set base currency"})
		}
		return
	}

	logger.Info("Base currency updated", slog.String("code", base.Code.String()))
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(base))
}
