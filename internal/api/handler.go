package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-engine/pkg/model"
)

// PricingService defines the engine operations the handler needs.
type PricingService interface {
	ValidateFields(requestID string, fields map[string]string) model.ValidationSummary
	PriceRFQ(rfq model.RawRFQ) (*model.PricedQuote, error)
	ImpliedVol(rfq model.RawRFQ, marketPrice, forwardRate, timeToExpiry float64) (float64, error)
}

// RatesHandler handles HTTP API requests for validation and pricing.
type RatesHandler struct {
	logger  *zap.Logger
	service PricingService
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(logger *zap.Logger, service PricingService) *RatesHandler {
	return &RatesHandler{
		logger:  logger,
		service: service,
	}
}

// ValidateHandler runs the rule set over a raw field mapping and
// returns the full report, valid or not.
func (h *RatesHandler) ValidateHandler(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary := h.service.ValidateFields(req.RequestID, req.Fields)
	return c.Status(fiber.StatusOK).JSON(summary)
}

// PriceHandler validates, builds and prices one RFQ synchronously.
func (h *RatesHandler) PriceHandler(c *fiber.Ctx) error {
	var req PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary := h.service.ValidateFields(req.RequestID, req.Fields)
	if !summary.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(summary)
	}

	quote, err := h.service.PriceRFQ(model.RawRFQ{
		RequestID: req.RequestID,
		ClientID:  req.ClientID,
		Fields:    req.Fields,
		Source:    "API",
	})
	if err != nil {
		h.logger.Error("rates.price.failed",
			zap.String("request_id", req.RequestID),
			zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(quote)
}

// ImpliedVolHandler backs out the volatility matching an observed price.
func (h *RatesHandler) ImpliedVolHandler(c *fiber.Ctx) error {
	var req ImpliedVolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vol, err := h.service.ImpliedVol(model.RawRFQ{
		RequestID: req.RequestID,
		Fields:    req.Fields,
		Source:    "API",
	}, req.MarketPrice, req.ForwardRate, req.TimeToExpiry)
	if err != nil {
		h.logger.Error("rates.implied_vol.failed",
			zap.String("request_id", req.RequestID),
			zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(ImpliedVolResponse{
		RequestID:  req.RequestID,
		ImpliedVol: vol,
	})
}
