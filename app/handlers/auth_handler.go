package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	GetCaptcha(c fiber.Ctx) error
	Signup(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	RefreshToken(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	baseHandler
	signupFlow     businessflow.SignupFlow
	loginFlow      businessflow.LoginFlow
	captchaService services.CaptchaService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(signupFlow businessflow.SignupFlow, loginFlow businessflow.LoginFlow, captchaService services.CaptchaService) *AuthHandler {
	return &AuthHandler{
		baseHandler:    newBaseHandler(),
		signupFlow:     signupFlow,
		loginFlow:      loginFlow,
		captchaService: captchaService,
	}
}

// GetCaptcha issues a rotate captcha challenge for signup
// @Summary Captcha Challenge
// @Description Generate a rotate captcha challenge required for signup
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CaptchaChallengeResponse} "Challenge generated"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/captcha [get]
func (h *AuthHandler) GetCaptcha(c fiber.Ctx) error {
	challenge, err := h.captchaService.GenerateRotate(h.createRequestContext(c, "/api/v1/auth/captcha"))
	if err != nil {
		log.Println("Captcha generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate captcha", "CAPTCHA_GENERATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Captcha generated successfully", dto.CaptchaChallengeResponse{
		ChallengeID:       challenge.ID,
		MasterImageBase64: challenge.MasterImageBase64,
		ThumbImageBase64:  challenge.ThumbImageBase64,
	})
}

// Signup handles account registration
// @Summary User Registration
// @Description Register a new account after captcha verification
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "User registration data"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Username or email taken"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.signupFlow.Signup(h.createRequestContext(c, "/api/v1/auth/signup"), &req, metadata)
	if err != nil {
		if businessflow.IsCaptchaFailed(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Captcha verification failed", "CAPTCHA_FAILED", nil)
		}
		if businessflow.IsUsernameTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username is already taken", "USERNAME_TAKEN", nil)
		}
		if errors.Is(err, businessflow.ErrUsernameReserved) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Username is reserved", "USERNAME_RESERVED", nil)
		}
		if businessflow.IsEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already exists", "EMAIL_EXISTS", nil)
		}

		log.Println("Signup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Account created successfully", result)
}

// Login handles authentication
// @Summary User Login
// @Description Authenticate with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	result, err := h.loginFlow.Login(h.createRequestContext(c, "/api/v1/auth/login"), &req, metadata)
	if err != nil {
		// Credential failures share one response so probing reveals nothing
		if businessflow.IsProfileNotFound(err) || businessflow.IsIncorrectPassword(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		}

		log.Println("Login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh Tokens
// @Description Exchange a valid refresh token for a fresh token pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.RefreshTokenResponse} "Tokens refreshed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateRequest(c, &req); !ok {
		return err
	}

	result, err := h.loginFlow.RefreshToken(h.createRequestContext(c, "/api/v1/auth/refresh"), &req)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "INVALID_REFRESH_TOKEN", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tokens refreshed successfully", result)
}
