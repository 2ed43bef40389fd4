// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

// Usernames that collide with route prefixes or are otherwise off limits
var reservedUsernames = map[string]bool{
	"api":     true,
	"admin":   true,
	"metrics": true,
	"health":  true,
	"static":  true,
	"assets":  true,
	"www":     true,
}

// SignupFlow handles new account registration
type SignupFlow interface {
	Signup(ctx context.Context, request *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
}

// SignupFlowImpl implements the signup business flow
type SignupFlowImpl struct {
	userRepo       repository.UserRepository
	tokenService   services.TokenService
	captchaService services.CaptchaService
	storageService services.StorageService
	db             *gorm.DB
}

// NewSignupFlow creates a new signup flow instance
func NewSignupFlow(
	userRepo repository.UserRepository,
	tokenService services.TokenService,
	captchaService services.CaptchaService,
	storageService services.StorageService,
	db *gorm.DB,
) SignupFlow {
	return &SignupFlowImpl{
		userRepo:       userRepo,
		tokenService:   tokenService,
		captchaService: captchaService,
		storageService: storageService,
		db:             db,
	}
}

// Signup registers a new account after captcha verification
func (sf *SignupFlowImpl) Signup(ctx context.Context, request *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if !sf.captchaService.VerifyRotate(ctx, request.CaptchaChallengeID, request.CaptchaAngle) {
		return nil, NewBusinessError("SIGNUP_CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
	}

	username := strings.ToLower(strings.TrimSpace(request.Username))
	email := strings.ToLower(strings.TrimSpace(request.Email))

	if reservedUsernames[username] {
		return nil, NewBusinessError("SIGNUP_USERNAME_RESERVED", "Username is reserved", ErrUsernameReserved)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_HASH_FAILED", "Failed to hash password", err)
	}

	var user *models.User

	err = repository.WithTransaction(ctx, sf.db, func(txCtx context.Context) error {
		existing, err := sf.userRepo.ByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameTaken
		}

		existing, err = sf.userRepo.ByEmail(txCtx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}

		user = &models.User{
			UUID:         uuid.New(),
			Username:     username,
			Email:        email,
			PasswordHash: string(hashedPassword),
			IsActive:     utils.ToPtr(true),
		}
		return sf.userRepo.Save(txCtx, user)
	})
	if err != nil {
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	accessToken, refreshToken, err := sf.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_TOKEN_FAILED", "Failed to issue tokens", err)
	}

	return &dto.SignupResponse{
		Message:      "Account created successfully",
		User:         ToUserDTO(*user, sf.storageService),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
