package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
	apptesting "github.com/linkdeck/linkdeck/testing"
)

// stubStorage returns predictable public URLs without touching any backend.
type stubStorage struct{}

func (stubStorage) Save(ctx context.Context, fileKey string, data []byte, contentType string) error {
	return nil
}
func (stubStorage) Delete(ctx context.Context, fileKey string) error { return nil }
func (stubStorage) PublicFileURL(fileKey string) string              { return "https://cdn.test/" + fileKey }

type redirectEnv struct {
	users  *apptesting.FakeUserRepository
	docs   *apptesting.FakeDocumentRepository
	links  *apptesting.FakeSocialLinkRepository
	clicks *apptesting.FakeLinkClickRepository
	app    *fiber.App
}

// newRedirectEnv wires a RedirectHandler onto a bare fiber app with the same
// routes the production router registers.
func newRedirectEnv(redirectDelay time.Duration) *redirectEnv {
	users := &apptesting.FakeUserRepository{}
	docs := &apptesting.FakeDocumentRepository{}
	links := &apptesting.FakeSocialLinkRepository{}
	clicks := &apptesting.FakeLinkClickRepository{}
	views := &apptesting.FakeProfileViewRepository{}

	handler := NewRedirectHandler(
		businessflow.NewResolveFlow(users, docs, links, stubStorage{}, nil),
		businessflow.NewAnalyticsFlow(links, clicks, views),
		redirectDelay,
	)

	app := fiber.New()
	app.Get("/api/v1/resolve/:username/:identifier", handler.Resolve)
	app.Get("/:username/:identifier", handler.Visit)

	return &redirectEnv{users: users, docs: docs, links: links, clicks: clicks, app: app}
}

func TestVisitRedirectsDespiteFailingClickStore(t *testing.T) {
	env := newRedirectEnv(0)
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))
	env.clicks.Err = errors.New("connection refused")

	resp, err := env.app.Test(httptest.NewRequest("GET", "/alice/github", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://github.com/alice", resp.Header.Get("Location"))

	// The click write runs off the request path. It must be attempted and its
	// failure must stay out of the response above.
	assert.Eventually(t, func() bool {
		return env.clicks.SaveCallCount() >= 1
	}, 2*time.Second, 10*time.Millisecond, "click recording should still be attempted")
}

func TestVisitReturnsNotFound(t *testing.T) {
	env := newRedirectEnv(0)
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	tests := []struct {
		name string
		path string
	}{
		{"unknown identifier", "/alice/nonexistent"},
		{"unknown profile", "/nobody/github"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, "not found", string(body))
		})
	}
}

func TestVisitServesInterstitialWhenDelayed(t *testing.T) {
	env := newRedirectEnv(3 * time.Second)
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	resp, err := env.app.Test(httptest.NewRequest("GET", "/alice/github", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `content="3;url=https://github.com/alice"`)
}

func TestResolveReturnsRedirectState(t *testing.T) {
	env := newRedirectEnv(0)
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/resolve/alice/github", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var state dto.RedirectStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.False(t, state.NotFound)
	require.NotNil(t, state.RedirectURL)
	assert.Equal(t, "https://github.com/alice", *state.RedirectURL)
}

func TestResolveReportsNotFoundAsState(t *testing.T) {
	env := newRedirectEnv(0)
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/resolve/alice/nonexistent", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var state dto.RedirectStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.True(t, state.NotFound)
	assert.Nil(t, state.RedirectURL)
}
