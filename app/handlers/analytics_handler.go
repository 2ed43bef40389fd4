package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	businessflow "github.com/linkdeck/linkdeck/business_flow"
)

// AnalyticsHandlerInterface defines the contract for analytics handlers
type AnalyticsHandlerInterface interface {
	GetAnalytics(c fiber.Ctx) error
	ExportClicks(c fiber.Ctx) error
}

// AnalyticsHandler serves the dashboard analytics read side
type AnalyticsHandler struct {
	baseHandler
	analyticsFlow businessflow.AnalyticsFlow
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsFlow businessflow.AnalyticsFlow) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler:   newBaseHandler(),
		analyticsFlow: analyticsFlow,
	}
}

// GetAnalytics returns click totals, per-link performance, and recent activity
// @Summary Get Analytics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsResponse} "Analytics retrieved"
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.analyticsFlow.GetAnalytics(h.createRequestContext(c, "/api/v1/analytics"), userID)
	if err != nil {
		log.Println("Get analytics failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch analytics", "ANALYTICS_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Analytics retrieved successfully", result)
}

// ExportClicks streams the click history as an xlsx workbook
// @Summary Export Clicks
// @Tags Analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Workbook"
// @Router /api/v1/analytics/export [get]
func (h *AnalyticsHandler) ExportClicks(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	data, filename, err := h.analyticsFlow.ExportClicks(h.createRequestContext(c, "/api/v1/analytics/export"), userID)
	if err != nil {
		log.Println("Export clicks failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export clicks", "ANALYTICS_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
