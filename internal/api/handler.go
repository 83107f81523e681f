package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/forecast"
	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

type Handler struct {
	service *forecast.Service
	logger  *zap.Logger
}

func NewHandler(service *forecast.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetForecast handles GET /api/v1/forecast
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	bundle := h.service.QueryAll(c.Context())
	if !bundle.Success {
		return c.Status(fiber.StatusBadGateway).JSON(bundle)
	}
	return c.JSON(bundle)
}

// GetLocationForecast handles GET /api/v1/forecast/:location
func (h *Handler) GetLocationForecast(c *fiber.Ctx) error {
	kind, ok := locationKind(c.Params("location"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location must be 'jiaoxi' or 'mountain'",
		})
	}

	result, err := h.service.QueryLocation(c.Context(), kind)
	if err != nil {
		h.logger.Error("Failed to get location forecast",
			zap.String("location", string(kind)),
			zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   err.Error(),
			"success": false,
		})
	}

	return c.JSON(fiber.Map{
		"location": kind,
		"mode":     result.Mode,
		"data":     result.Data,
	})
}

// GetRiskSummary handles GET /api/v1/forecast/:location/risk
func (h *Handler) GetRiskSummary(c *fiber.Ctx) error {
	kind, ok := locationKind(c.Params("location"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location must be 'jiaoxi' or 'mountain'",
		})
	}

	result, err := h.service.QueryLocation(c.Context(), kind)
	if err != nil {
		h.logger.Error("Failed to get risk summary",
			zap.String("location", string(kind)),
			zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   err.Error(),
			"success": false,
		})
	}

	summary := forecast.TripRiskSummary(result.Data)
	if summary == nil {
		return c.JSON(fiber.Map{
			"location": kind,
			"summary":  nil,
		})
	}

	return c.JSON(fiber.Map{
		"location": kind,
		"summary":  summary,
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

func locationKind(param string) (models.LocationKind, bool) {
	switch models.LocationKind(param) {
	case models.LocationJiaoxi:
		return models.LocationJiaoxi, true
	case models.LocationMountain:
		return models.LocationMountain, true
	}
	return "", false
}

var startTime = time.Now()
