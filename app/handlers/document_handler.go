package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/app/dto"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
)

// DocumentHandlerInterface defines the contract for document handlers
type DocumentHandlerInterface interface {
	UploadDocument(c fiber.Ctx) error
	ListDocuments(c fiber.Ctx) error
	UpdateDocument(c fiber.Ctx) error
	DeleteDocument(c fiber.Ctx) error
}

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	baseHandler
	documentFlow businessflow.DocumentFlow
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentFlow businessflow.DocumentFlow) *DocumentHandler {
	return &DocumentHandler{
		baseHandler:  newBaseHandler(),
		documentFlow: documentFlow,
	}
}

// UploadDocument stores a new document
// @Summary Upload Document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document file"
// @Param title formData string false "Display title"
// @Param slug formData string false "Public slug"
// @Success 201 {object} dto.APIResponse{data=dto.UploadDocumentResponse} "Document uploaded"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Failure 409 {object} dto.APIResponse "Slug taken"
// @Router /api/v1/documents [post]
func (h *DocumentHandler) UploadDocument(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Document file is required", "MISSING_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read document file", "INVALID_FILE", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read document file", "INVALID_FILE", nil)
	}

	result, err := h.documentFlow.UploadDocument(h.createRequestContext(c, "/api/v1/documents"), &dto.UploadDocumentRequest{
		UserID:           userID,
		Title:            c.FormValue("title"),
		Slug:             c.FormValue("slug"),
		OriginalFilename: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		Data:             data,
	})
	if err != nil {
		if businessflow.IsInvalidFileType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "File type is not allowed", "DOCUMENT_INVALID_TYPE", nil)
		}
		if businessflow.IsFileTooLarge(err) {
			return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File exceeds the maximum allowed size", "DOCUMENT_TOO_LARGE", nil)
		}
		if businessflow.IsSlugTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug is already in use", "SLUG_TAKEN", nil)
		}
		log.Println("Upload document failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload document", "DOCUMENT_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Document uploaded successfully", result)
}

// ListDocuments returns the user's active documents
// @Summary List Documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ListDocumentsResponse} "Documents retrieved"
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.documentFlow.ListDocuments(h.createRequestContext(c, "/api/v1/documents"), userID)
	if err != nil {
		log.Println("List documents failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list documents", "DOCUMENT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Documents retrieved successfully", result)
}

// UpdateDocument updates document metadata
// @Summary Update Document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse} "Document updated"
// @Failure 404 {object} dto.APIResponse "Document not found"
// @Failure 409 {object} dto.APIResponse "Slug taken"
// @Router /api/v1/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid document ID", "INVALID_DOCUMENT_ID", nil)
	}

	var req dto.UpdateDocumentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.documentFlow.UpdateDocument(h.createRequestContext(c, "/api/v1/documents/:id"), userID, docID, &req)
	if err != nil {
		if businessflow.IsSlugTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug is already in use", "SLUG_TAKEN", nil)
		}
		return h.documentError(c, err, "Update document failed", "DOCUMENT_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Document updated successfully", result)
}

// DeleteDocument soft-deletes an owned document
// @Summary Delete Document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.APIResponse "Document deleted"
// @Failure 404 {object} dto.APIResponse "Document not found"
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid document ID", "INVALID_DOCUMENT_ID", nil)
	}

	if err := h.documentFlow.DeleteDocument(h.createRequestContext(c, "/api/v1/documents/:id"), userID, docID); err != nil {
		return h.documentError(c, err, "Delete document failed", "DOCUMENT_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Document deleted successfully", nil)
}

func (h *DocumentHandler) documentError(c fiber.Ctx, err error, logMsg, fallbackCode string) error {
	if businessflow.IsDocumentNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Document not found", "DOCUMENT_NOT_FOUND", nil)
	}
	if errors.Is(err, businessflow.ErrDocumentAccessDenied) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Document access denied", "DOCUMENT_ACCESS_DENIED", nil)
	}
	log.Println(logMsg, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, logMsg, fallbackCode, nil)
}
