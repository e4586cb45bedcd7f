package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-coin-analyzer/internal/config"
	"go-coin-analyzer/internal/currency"
	apperrors "go-coin-analyzer/internal/errors"
	"go-coin-analyzer/internal/intake"
	"go-coin-analyzer/internal/logger"
	"go-coin-analyzer/internal/service"
)

// ErrorResponse is the JSON error body. Details carries the underlying cause
// message on server-side failures and is omitted for input errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ConversionResponse is the body of the currency conversion endpoint
type ConversionResponse struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
}

func NewHandler(svc service.CoinAnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Multipart encoding adds overhead on top of the image itself, so the
	// body cap sits above the upload cap and intake enforces the exact limit
	r.Use(requestSizeLimiter(cfg.MaxUploadSize + 1<<20))

	r.GET("/health", healthCheck)
	r.POST("/api/analyze-coin", analyzeCoin(svc, cfg))
	r.GET("/api/currencies", listCurrencies)
	r.GET("/api/convert", convertCurrency)

	return r
}

func analyzeCoin(svc service.CoinAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := uuid.NewString()

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		}).Info("Processing coin analysis request")

		img, err := intake.FromRequest(c.Request, cfg.MaxUploadSize)
		if err != nil {
			respondError(c, requestID, "invalid upload", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"mime_type":  img.MIMEType,
			"size_bytes": img.Size,
		}).Debug("Image accepted")

		result, err := svc.AnalyzeCoin(ctx, img)
		if err != nil {
			respondError(c, requestID, "failed to analyze coin", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id":         requestID,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"is_coin":            result.IsCoin,
		}).Info("Coin analysis completed successfully")

		c.JSON(http.StatusOK, result)
	}
}

func listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": currency.All()})
}

func convertCurrency(c *gin.Context) {
	amountParam := c.Query("amount")
	if amountParam == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount query parameter is required"})
		return
	}
	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a number"})
		return
	}

	from := c.DefaultQuery("from", "USD")
	to := c.DefaultQuery("to", "EUR")

	converted, rate := currency.Convert(amount, from, to)
	c.JSON(http.StatusOK, ConversionResponse{
		Amount:          amount,
		From:            currency.Lookup(from).Code,
		To:              currency.Lookup(to).Code,
		ConvertedAmount: converted,
		ExchangeRate:    rate,
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, requestID, message string, err error) {
	code := apperrors.GetStatusCode(err)

	logger.WithError(err).WithFields(logrus.Fields{
		"request_id":  requestID,
		"status_code": code,
		"error_kind":  apperrors.KindOf(err),
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	body := ErrorResponse{Error: message}
	if appErr, ok := err.(*apperrors.AppError); ok {
		if code < http.StatusInternalServerError {
			// Input errors are surfaced verbatim with no details object
			body.Error = appErr.Message
		} else {
			body.Details = appErr.Error()
		}
	}

	c.AbortWithStatusJSON(code, body)
}
