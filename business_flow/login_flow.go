package businessflow

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

// LoginFlow handles authentication and token refresh
type LoginFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	userRepo       repository.UserRepository
	tokenService   services.TokenService
	storageService services.StorageService
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	userRepo repository.UserRepository,
	tokenService services.TokenService,
	storageService services.StorageService,
) LoginFlow {
	return &LoginFlowImpl{
		userRepo:       userRepo,
		tokenService:   tokenService,
		storageService: storageService,
	}
}

// Login authenticates a user with email and password
func (lf *LoginFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	user, err := lf.userRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrProfileNotFound)
	}

	if !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := lf.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_TOKEN_FAILED", "Failed to issue tokens", err)
	}

	// Login still succeeds if the timestamp update fails
	if err := lf.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("login: failed to record last login for user %d: %v", user.ID, err)
	}

	return &dto.LoginResponse{
		Message:      "Login successful",
		User:         ToUserDTO(*user, lf.storageService),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (lf *LoginFlowImpl) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	accessToken, refreshToken, err := lf.tokenService.RefreshToken(request.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
