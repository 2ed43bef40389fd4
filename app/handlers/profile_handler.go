package handlers

import (
	"context"
	"io"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/linkdeck/linkdeck/app/dto"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
	"github.com/linkdeck/linkdeck/utils"
)

// ProfileHandlerInterface defines the contract for profile handlers
type ProfileHandlerInterface interface {
	GetMyProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
	UploadAvatar(c fiber.Ctx) error
	GetPublicProfile(c fiber.Ctx) error
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	baseHandler
	profileFlow   businessflow.ProfileFlow
	analyticsFlow businessflow.AnalyticsFlow
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileFlow businessflow.ProfileFlow, analyticsFlow businessflow.AnalyticsFlow) *ProfileHandler {
	return &ProfileHandler{
		baseHandler:   newBaseHandler(),
		profileFlow:   profileFlow,
		analyticsFlow: analyticsFlow,
	}
}

// GetMyProfile returns the authenticated user's profile
// @Summary Get My Profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GetProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetMyProfile(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	result, err := h.profileFlow.GetMyProfile(h.createRequestContext(c, "/api/v1/profile"), userID)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", "PROFILE_NOT_FOUND", nil)
		}
		log.Println("Get profile failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch profile", "PROFILE_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", result)
}

// UpdateProfile updates the authenticated user's profile
// @Summary Update Profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateProfileResponse} "Profile updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Username taken"
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.profileFlow.UpdateProfile(h.createRequestContext(c, "/api/v1/profile"), userID, &req)
	if err != nil {
		if businessflow.IsUsernameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username is already taken", "USERNAME_TAKEN", nil)
		}
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", "PROFILE_NOT_FOUND", nil)
		}
		log.Println("Update profile failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile", "PROFILE_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", result)
}

// UploadAvatar stores a new avatar image for the authenticated user
// @Summary Upload Avatar
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UploadAvatarResponse} "Avatar uploaded"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Router /api/v1/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c fiber.Ctx) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Avatar file is required", "MISSING_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read avatar file", "INVALID_FILE", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read avatar file", "INVALID_FILE", nil)
	}

	result, err := h.profileFlow.UploadAvatar(h.createRequestContext(c, "/api/v1/profile/avatar"), &dto.UploadAvatarRequest{
		UserID:           userID,
		OriginalFilename: fileHeader.Filename,
		Data:             data,
	})
	if err != nil {
		if businessflow.IsInvalidFileType(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Avatar must be an image", "AVATAR_INVALID_TYPE", nil)
		}
		log.Println("Upload avatar failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload avatar", "AVATAR_UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Avatar uploaded successfully", result)
}

// GetPublicProfile returns the visitor-facing profile and records a view
// @Summary Get Public Profile
// @Tags Profile
// @Produce json
// @Param username path string true "Profile username"
// @Success 200 {object} dto.APIResponse{data=dto.PublicProfileResponse} "Profile retrieved"
// @Failure 404 {object} dto.APIResponse "Profile not found"
// @Router /api/v1/profiles/{username} [get]
func (h *ProfileHandler) GetPublicProfile(c fiber.Ctx) error {
	username := c.Params("username")

	result, err := h.profileFlow.GetPublicProfile(h.createRequestContext(c, "/api/v1/profiles/:username"), username)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", "PROFILE_NOT_FOUND", nil)
		}
		log.Println("Get public profile failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch profile", "PROFILE_FETCH_FAILED", nil)
	}

	h.recordViewAsync(c, result)

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", result)
}

// recordViewAsync records the profile view without blocking the response.
func (h *ProfileHandler) recordViewAsync(c fiber.Ctx, profile *dto.PublicProfileResponse) {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetReferrer(c.Get("Referer"))
	metadata.SetRequestID(c.Get("X-Request-ID"))
	userID := profile.UserID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), utils.StoreCallTimeout)
		defer cancel()
		h.analyticsFlow.RecordProfileView(ctx, userID, metadata)
	}()
}
