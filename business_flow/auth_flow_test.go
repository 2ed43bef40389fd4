package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

// stubCaptcha accepts or rejects every verification attempt.
type stubCaptcha struct {
	pass bool
}

func (s stubCaptcha) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{ID: "stub"}, nil
}

func (s stubCaptcha) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	return s.pass
}

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	ts, err := services.NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
	)
	require.NoError(t, err)
	return ts
}

func signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{
		Username:           "Alice",
		Email:              "Alice@Example.com",
		Password:           "SuperSecret1!",
		ConfirmPassword:    "SuperSecret1!",
		CaptchaChallengeID: "stub",
		CaptchaAngle:       42,
	}
}

func TestSignupCreatesAccountAndIssuesTokens(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	flow := NewSignupFlow(users, newTestTokenService(t), stubCaptcha{pass: true}, fakeStorage{}, nil)

	resp, err := flow.Signup(context.Background(), signupRequest(), NewClientMetadata("10.0.0.1", "ua"))
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username, "username must be stored lowercase")
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	require.Len(t, users.Users, 1)
	assert.True(t, utils.IsTrue(users.Users[0].IsActive))
	assert.NotEqual(t, "SuperSecret1!", users.Users[0].PasswordHash)
}

func TestSignupRejectsFailedCaptcha(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	flow := NewSignupFlow(users, newTestTokenService(t), stubCaptcha{pass: false}, fakeStorage{}, nil)

	_, err := flow.Signup(context.Background(), signupRequest(), NewClientMetadata("10.0.0.1", "ua"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCaptchaFailed))
	assert.Zero(t, users.SaveCalls)
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	flow := NewSignupFlow(&apptesting.FakeUserRepository{}, newTestTokenService(t), stubCaptcha{pass: true}, fakeStorage{}, nil)

	for _, username := range []string{"api", "Admin", "metrics", "www"} {
		req := signupRequest()
		req.Username = username
		_, err := flow.Signup(context.Background(), req, NewClientMetadata("10.0.0.1", "ua"))
		require.Error(t, err, username)
		assert.True(t, errors.Is(err, ErrUsernameReserved))
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	users.Users = append(users.Users, apptesting.NewTestUser(1, "alice"))
	flow := NewSignupFlow(users, newTestTokenService(t), stubCaptcha{pass: true}, fakeStorage{}, nil)

	_, err := flow.Signup(context.Background(), signupRequest(), NewClientMetadata("10.0.0.1", "ua"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameTaken))

	req := signupRequest()
	req.Username = "bob"
	req.Email = "alice@example.com"
	_, err = flow.Signup(context.Background(), req, NewClientMetadata("10.0.0.1", "ua"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailAlreadyExists))
}

func TestLoginHappyPath(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	users.Users = append(users.Users, apptesting.NewTestUser(1, "alice"))
	flow := NewLoginFlow(users, newTestTokenService(t), fakeStorage{})

	resp, err := flow.Login(context.Background(), &dto.LoginRequest{
		Email:    "Alice@Example.com",
		Password: "TestPass123!",
	}, NewClientMetadata("10.0.0.1", "ua"))
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	inactive := apptesting.NewTestUser(2, "bob")
	inactive.IsActive = utils.ToPtr(false)
	users.Users = append(users.Users, apptesting.NewTestUser(1, "alice"), inactive)
	flow := NewLoginFlow(users, newTestTokenService(t), fakeStorage{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "ghost@example.com", "TestPass123!", ErrProfileNotFound},
		{"wrong password", "alice@example.com", "nope", ErrIncorrectPassword},
		{"inactive account", "bob@example.com", "TestPass123!", ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password}, NewClientMetadata("10.0.0.1", "ua"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestLoginSurvivesLastLoginUpdateFailure(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	users.Users = append(users.Users, apptesting.NewTestUser(1, "alice"))
	users.UpdateLastLoginErr = errors.New("deadlock detected")
	flow := NewLoginFlow(users, newTestTokenService(t), fakeStorage{})

	resp, err := flow.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "TestPass123!",
	}, NewClientMetadata("10.0.0.1", "ua"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	users := &apptesting.FakeUserRepository{}
	users.Users = append(users.Users, apptesting.NewTestUser(1, "alice"))
	tokens := newTestTokenService(t)
	flow := NewLoginFlow(users, tokens, fakeStorage{})

	login, err := flow.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "TestPass123!",
	}, NewClientMetadata("10.0.0.1", "ua"))
	require.NoError(t, err)

	refreshed, err := flow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The consumed refresh token is revoked and cannot be replayed
	_, err = flow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}
