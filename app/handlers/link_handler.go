package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/app/dto"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
)

// LinkHandlerInterface defines the contract for social link handlers
type LinkHandlerInterface interface {
	ListLinks(c fiber.Ctx) error
	CreateLink(c fiber.Ctx) error
	UpdateLink(c fiber.Ctx) error
	DeleteLink(c fiber.Ctx) error
	ReorderLinks(c fiber.Ctx) error
}

// LinkHandler handles social link HTTP requests
type LinkHandler struct {
	baseHandler
	linkFlow businessflow.LinkFlow
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkFlow businessflow.LinkFlow) *LinkHandler {
	return &LinkHandler{
		baseHandler: newBaseHandler(),
		linkFlow:    linkFlow,
	}
}

// ListLinks returns the user's links ordered by position
// @Summary List Links
// @Tags Links
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ListLinksResponse} "Links retrieved"
// @Router /api/v1/links [get]
func (h *LinkHandler) ListLinks(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.linkFlow.ListLinks(h.createRequestContext(c, "/api/v1/links"), userID)
	if err != nil {
		log.Println("List links failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list links", "LINK_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Links retrieved successfully", result)
}

// CreateLink adds a link to the user's profile
// @Summary Create Link
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLinkRequest true "New link"
// @Success 201 {object} dto.APIResponse{data=dto.LinkResponse} "Link created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/links [post]
func (h *LinkHandler) CreateLink(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	var req dto.CreateLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.linkFlow.CreateLink(h.createRequestContext(c, "/api/v1/links"), userID, &req)
	if err != nil {
		log.Println("Create link failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create link", "LINK_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Link created successfully", result)
}

// UpdateLink updates an owned link
// @Summary Update Link
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Link ID"
// @Param request body dto.UpdateLinkRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LinkResponse} "Link updated"
// @Failure 404 {object} dto.APIResponse "Link not found"
// @Router /api/v1/links/{id} [put]
func (h *LinkHandler) UpdateLink(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link ID", "INVALID_LINK_ID", nil)
	}

	var req dto.UpdateLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.linkFlow.UpdateLink(h.createRequestContext(c, "/api/v1/links/:id"), userID, linkID, &req)
	if err != nil {
		return h.linkError(c, err, "Update link failed", "LINK_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Link updated successfully", result)
}

// DeleteLink removes an owned link
// @Summary Delete Link
// @Tags Links
// @Produce json
// @Security BearerAuth
// @Param id path string true "Link ID"
// @Success 200 {object} dto.APIResponse "Link deleted"
// @Failure 404 {object} dto.APIResponse "Link not found"
// @Router /api/v1/links/{id} [delete]
func (h *LinkHandler) DeleteLink(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid link ID", "INVALID_LINK_ID", nil)
	}

	if err := h.linkFlow.DeleteLink(h.createRequestContext(c, "/api/v1/links/:id"), userID, linkID); err != nil {
		return h.linkError(c, err, "Delete link failed", "LINK_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Link deleted successfully", nil)
}

// ReorderLinks applies a full new ordering of the user's links
// @Summary Reorder Links
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReorderLinksRequest true "Ordered link IDs"
// @Success 200 {object} dto.APIResponse{data=dto.ReorderLinksResponse} "Links reordered"
// @Failure 400 {object} dto.APIResponse "Incomplete ordering"
// @Router /api/v1/links/reorder [put]
func (h *LinkHandler) ReorderLinks(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	var req dto.ReorderLinksRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.linkFlow.ReorderLinks(h.createRequestContext(c, "/api/v1/links/reorder"), userID, &req)
	if err != nil {
		if errors.Is(err, businessflow.ErrReorderIncomplete) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Reorder must include every link exactly once", "REORDER_INCOMPLETE", nil)
		}
		return h.linkError(c, err, "Reorder links failed", "LINK_REORDER_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Links reordered successfully", result)
}

func (h *LinkHandler) linkError(c fiber.Ctx, err error, logMsg, fallbackCode string) error {
	if businessflow.IsLinkNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Link not found", "LINK_NOT_FOUND", nil)
	}
	if errors.Is(err, businessflow.ErrLinkAccessDenied) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Link access denied", "LINK_ACCESS_DENIED", nil)
	}
	log.Println(logMsg, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, logMsg, fallbackCode, nil)
}
