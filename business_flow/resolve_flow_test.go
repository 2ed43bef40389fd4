package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

// fakeStorage returns predictable public URLs without touching any backend.
type fakeStorage struct{}

func (fakeStorage) Save(ctx context.Context, fileKey string, data []byte, contentType string) error {
	return nil
}
func (fakeStorage) Delete(ctx context.Context, fileKey string) error { return nil }
func (fakeStorage) PublicFileURL(fileKey string) string              { return "https://cdn.test/" + fileKey }

type resolveEnv struct {
	users *apptesting.FakeUserRepository
	docs  *apptesting.FakeDocumentRepository
	links *apptesting.FakeSocialLinkRepository
	flow  ResolveFlow
}

func newResolveEnv() *resolveEnv {
	users := &apptesting.FakeUserRepository{}
	docs := &apptesting.FakeDocumentRepository{}
	links := &apptesting.FakeSocialLinkRepository{}
	return &resolveEnv{
		users: users,
		docs:  docs,
		links: links,
		flow:  NewResolveFlow(users, docs, links, fakeStorage{}, nil),
	}
}

func TestResolveDocumentSlugWinsOverLinks(t *testing.T) {
	env := newResolveEnv()
	user := apptesting.NewTestUser(1, "alice")
	env.users.Users = append(env.users.Users, user)
	env.docs.Docs = append(env.docs.Docs, apptesting.NewTestDocument(1, "Resume", "resume"))
	// A link whose slugified title collides with the document slug
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "Resume", "https://example.com/resume", "globe", 0))

	target, err := env.flow.Resolve(context.Background(), "alice", "resume")
	require.NoError(t, err)
	require.True(t, target.IsFound())
	assert.Equal(t, dto.TargetKindDocument, target.Kind)
	assert.Contains(t, target.URL, "https://cdn.test/documents/1/")
	assert.Zero(t, env.links.ActiveByUserCalls, "link scan must not run when a slug matches")
}

func TestResolveDocumentByUUID(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	doc := apptesting.NewTestDocument(1, "Whitepaper", "")
	env.docs.Docs = append(env.docs.Docs, doc)

	target, err := env.flow.Resolve(context.Background(), "alice", doc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindDocument, target.Kind)
	assert.Equal(t, 1, env.docs.PublicByUUIDCalls)
}

func TestResolveSkipsUUIDLookupForPlainIdentifiers(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	target, err := env.flow.Resolve(context.Background(), "alice", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindLink, target.Kind)
	assert.Equal(t, "https://github.com/alice", target.URL)
	assert.Zero(t, env.docs.PublicByUUIDCalls, "non UUID-shaped identifiers must not hit the UUID lookup")
	assert.Equal(t, 1, env.docs.PublicBySlugCalls)
}

func TestResolveLinkByIconCaseInsensitive(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "My Code", "https://github.com/alice", "GitHub", 0))

	target, err := env.flow.Resolve(context.Background(), "Alice", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindLink, target.Kind)
}

func TestResolveLinkBySlugifiedTitle(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	link := apptesting.NewTestLink(1, "My Blog", "https://blog.example.com", "globe", 0)
	env.links.Links = append(env.links.Links, link)

	target, err := env.flow.Resolve(context.Background(), "alice", "my-blog")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindLink, target.Kind)
	assert.Equal(t, link.ID.String(), target.LinkID)
}

func TestResolveFirstMatchByPositionWins(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	second := apptesting.NewTestLink(1, "Mirror", "https://second.example.com", "globe", 2)
	first := apptesting.NewTestLink(1, "Site", "https://first.example.com", "globe", 1)
	env.links.Links = append(env.links.Links, second, first)

	target, err := env.flow.Resolve(context.Background(), "alice", "globe")
	require.NoError(t, err)
	assert.Equal(t, "https://first.example.com", target.URL)
}

func TestResolveIgnoresInactiveAndPrivateEntries(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))

	hiddenDoc := apptesting.NewTestDocument(1, "Draft", "draft")
	hiddenDoc.IsPublic = utils.ToPtr(false)
	inactiveDoc := apptesting.NewTestDocument(1, "Old", "old")
	inactiveDoc.IsActive = utils.ToPtr(false)
	env.docs.Docs = append(env.docs.Docs, hiddenDoc, inactiveDoc)

	offLink := apptesting.NewTestLink(1, "Old Site", "https://old.example.com", "globe", 0)
	offLink.IsActive = utils.ToPtr(false)
	env.links.Links = append(env.links.Links, offLink)

	for _, identifier := range []string{"draft", "old", "globe", "old-site"} {
		target, err := env.flow.Resolve(context.Background(), "alice", identifier)
		require.NoError(t, err)
		assert.Equal(t, dto.TargetKindNotFound, target.Kind, "identifier %q", identifier)
	}
}

func TestResolveEmptyInputsSkipStore(t *testing.T) {
	env := newResolveEnv()

	for _, tc := range []struct{ username, identifier string }{
		{"", "github"},
		{"alice", ""},
		{"  ", "  "},
	} {
		target, err := env.flow.Resolve(context.Background(), tc.username, tc.identifier)
		require.NoError(t, err)
		assert.Equal(t, dto.TargetKindNotFound, target.Kind)
	}
	assert.Zero(t, env.users.StoreCalls())
	assert.Zero(t, env.docs.StoreCalls())
	assert.Zero(t, env.links.ActiveByUserCalls)
}

func TestResolveUnknownProfileIsTerminal(t *testing.T) {
	env := newResolveEnv()

	target, err := env.flow.Resolve(context.Background(), "ghost", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindNotFound, target.Kind)
	assert.Zero(t, env.docs.StoreCalls(), "document strategies must not run without a profile")
	assert.Zero(t, env.links.ActiveByUserCalls)
}

func TestResolveInactiveProfileIsTerminal(t *testing.T) {
	env := newResolveEnv()
	user := apptesting.NewTestUser(1, "alice")
	user.IsActive = utils.ToPtr(false)
	env.users.Users = append(env.users.Users, user)
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	target, err := env.flow.Resolve(context.Background(), "alice", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindNotFound, target.Kind)
	assert.Zero(t, env.links.ActiveByUserCalls)
}

func TestResolveProfileLookupErrorIsTerminal(t *testing.T) {
	env := newResolveEnv()
	env.users.Err = errors.New("connection reset")

	target, err := env.flow.Resolve(context.Background(), "alice", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindNotFound, target.Kind)
	assert.Zero(t, env.docs.StoreCalls())
}

func TestResolveSlugLookupErrorFallsThrough(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.docs.SlugErr = errors.New("timeout")
	env.links.Links = append(env.links.Links, apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0))

	target, err := env.flow.Resolve(context.Background(), "alice", "github")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindLink, target.Kind, "a failing slug lookup falls through to the link scan")
}

func TestResolveLowercasesIdentifierBeforeSlugLookup(t *testing.T) {
	env := newResolveEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))
	env.docs.Docs = append(env.docs.Docs, apptesting.NewTestDocument(1, "Resume", "resume"))

	target, err := env.flow.Resolve(context.Background(), "alice", "RESUME")
	require.NoError(t, err)
	assert.Equal(t, dto.TargetKindDocument, target.Kind)
	require.Len(t, env.docs.SlugCalls, 1)
	assert.Equal(t, "resume", env.docs.SlugCalls[0])
}
