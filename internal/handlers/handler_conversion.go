package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	portssvc "github.com/finbase/currency_exchange_app/internal/core/ports/services"
	"github.com/finbase/currency_exchange_app/internal/dto"
	"github.com/finbase/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles currency conversion requests.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
}

// RegisterConversionRoutes registers the conversion route.
func RegisterConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := &conversionHandler{conversionService: conversionService}
	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts via the base currency, triangulating between two non-base currencies; result is not rounded to the target currency's decimal places
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No applicable rate"
// @Failure 422 {object} map[string]string "No base currency configured"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Security BearerAuth
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var asOf time.Time
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	logger.Info("Received conversion request",
		slog.String("from", req.FromCode),
		slog.String("to", req.ToCode),
		slog.Any("amount", req.Amount),
	)

	result, err := h.conversionService.Convert(c.Request.Context(), req.Amount, req.FromCode, req.ToCode, asOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBusinessRule):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(result))
}
