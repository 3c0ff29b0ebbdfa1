package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-engine/pkg/model"
)

// QuoteReader defines the store reads the query handler needs.
type QuoteReader interface {
	GetCachedQuote(ctx context.Context, requestID string) (*model.PricedQuote, error)
	GetRecentQuotes(ctx context.Context, clientID string, limit int) ([]model.PricedQuote, error)
	GetValidationEvent(ctx context.Context, requestID string) (*model.ValidationSummary, error)
	GetJSON(ctx context.Context, key string, dest any) error
}

// QueryHandler serves read access to priced quotes and validation
// reports.
type QueryHandler struct {
	logger *zap.Logger
	store  QuoteReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(logger *zap.Logger, store QuoteReader) *QueryHandler {
	return &QueryHandler{
		logger: logger,
		store:  store,
	}
}

// RecentQuotesHandler lists recent pricing events, optionally filtered
// by client.
func (h *QueryHandler) RecentQuotesHandler(c *fiber.Ctx) error {
	clientID := c.Query("client_id")
	limit := c.QueryInt("limit", 50)

	quotes, err := h.store.GetRecentQuotes(c.Context(), clientID, limit)
	if err != nil {
		h.logger.Error("rates.recent_quotes.failed",
			zap.String("client_id", clientID),
			zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":  len(quotes),
		"quotes": quotes,
	})
}

// QuoteByRequestHandler returns the cached quote for one request ID.
func (h *QueryHandler) QuoteByRequestHandler(c *fiber.Ctx) error {
	requestID := c.Params("request_id")

	quote, err := h.store.GetCachedQuote(c.Context(), requestID)
	if err != nil {
		h.logger.Error("rates.quote_lookup.failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if quote == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quote not found"})
	}

	return c.Status(fiber.StatusOK).JSON(quote)
}

// ValidationReportHandler returns the validation outcome for one
// request, preferring the Redis cache and falling back to Postgres.
func (h *QueryHandler) ValidationReportHandler(c *fiber.Ctx) error {
	requestID := c.Params("request_id")

	var summary model.ValidationSummary
	if err := h.store.GetJSON(c.Context(), "report:"+requestID, &summary); err == nil {
		return c.Status(fiber.StatusOK).JSON(summary)
	}

	stored, err := h.store.GetValidationEvent(c.Context(), requestID)
	if err != nil || stored == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "report not found"})
	}

	return c.Status(fiber.StatusOK).JSON(stored)
}
