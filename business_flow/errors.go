// Package businessflow contains the core business logic and use cases for profile resolution and the dashboard
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrProfileNotFound    = errors.New("profile not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUsernameReserved   = errors.New("username is reserved")
	ErrCaptchaFailed      = errors.New("captcha verification failed")

	// Link-related errors
	ErrLinkNotFound      = errors.New("link not found")
	ErrLinkAccessDenied  = errors.New("link access denied")
	ErrReorderIncomplete = errors.New("reorder must include every link exactly once")

	// Document-related errors
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentAccessDenied = errors.New("document access denied")
	ErrSlugTaken            = errors.New("slug is already in use")
	ErrInvalidFileType      = errors.New("file type is not allowed")
	ErrFileTooLarge         = errors.New("file exceeds the maximum allowed size")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsLinkNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound)
}

func IsDocumentNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}

func IsSlugTaken(err error) bool {
	return errors.Is(err, ErrSlugTaken)
}

func IsInvalidFileType(err error) bool {
	return errors.Is(err, ErrInvalidFileType)
}

func IsFileTooLarge(err error) bool {
	return errors.Is(err, ErrFileTooLarge)
}
