// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/utils"
)

const defaultRequestTimeout = 30 * time.Second

// baseHandler carries the pieces every handler needs: request validation and
// the response envelope helpers.
type baseHandler struct {
	validator *validator.Validate
}

func newBaseHandler() baseHandler {
	v := validator.New()

	// Usernames are lowercase slugs: letters, digits, single dashes inside
	_ = v.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) == 0 {
			return false
		}
		prevDash := false
		for i, char := range value {
			switch {
			case char >= 'a' && char <= 'z', char >= '0' && char <= '9':
				prevDash = false
			case char >= 'A' && char <= 'Z':
				prevDash = false
			case char == '-':
				if i == 0 || i == len(value)-1 || prevDash {
					return false
				}
				prevDash = true
			default:
				return false
			}
		}
		return true
	})

	return baseHandler{validator: v}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// validateRequest runs struct validation and renders the error response when
// it fails. Returns true when the request is valid.
func (h *baseHandler) validateRequest(c fiber.Ctx, req any) (bool, error) {
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(fieldErr))
		}
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}
	return true, nil
}

// createRequestContext builds a request-scoped context detached from the
// fiber context so flows outlive response serialization safely.
func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel) // Stored for cleanup

	return ctx
}

// authenticatedUserID reads the user id set by the auth middleware.
func authenticatedUserID(c fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("user_id").(uint)
	return userID, ok
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return err.Field() + " must be a valid URL"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "eqfield":
		return err.Field() + " must match " + err.Param()
	case "uuid4":
		return err.Field() + " must be a valid UUID"
	case "username_format":
		return "Username may contain letters, digits, and single dashes"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
