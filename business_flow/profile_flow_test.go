package businessflow

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

type profileEnv struct {
	users   *apptesting.FakeUserRepository
	links   *apptesting.FakeSocialLinkRepository
	docs    *apptesting.FakeDocumentRepository
	storage *recordingStorage
	flow    ProfileFlow
}

func newProfileEnv() *profileEnv {
	users := &apptesting.FakeUserRepository{}
	links := &apptesting.FakeSocialLinkRepository{}
	docs := &apptesting.FakeDocumentRepository{}
	storage := newRecordingStorage()
	return &profileEnv{
		users:   users,
		links:   links,
		docs:    docs,
		storage: storage,
		flow:    NewProfileFlow(users, links, docs, storage, nil),
	}
}

func TestUpdateProfileChangesUsername(t *testing.T) {
	env := newProfileEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))

	resp, err := env.flow.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		Username:    utils.ToPtr("Alice-New"),
		DisplayName: utils.ToPtr("Alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice-new", resp.User.Username)
	require.NotNil(t, resp.User.DisplayName)
	assert.Equal(t, "Alice", *resp.User.DisplayName)
}

func TestUpdateProfileRejectsTakenAndReservedUsernames(t *testing.T) {
	env := newProfileEnv()
	env.users.Users = append(env.users.Users,
		apptesting.NewTestUser(1, "alice"),
		apptesting.NewTestUser(2, "bob"),
	)

	_, err := env.flow.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		Username: utils.ToPtr("bob"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameTaken))

	_, err = env.flow.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		Username: utils.ToPtr("admin"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsernameReserved))
}

func TestUpdateProfileKeepingOwnUsername(t *testing.T) {
	env := newProfileEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))

	resp, err := env.flow.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{
		Username: utils.ToPtr("alice"),
		Bio:      utils.ToPtr("hi there"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAvatarStoresResizedJPEG(t *testing.T) {
	env := newProfileEnv()
	user := apptesting.NewTestUser(1, "alice")
	env.users.Users = append(env.users.Users, user)

	resp, err := env.flow.UploadAvatar(context.Background(), &dto.UploadAvatarRequest{
		UserID:           1,
		OriginalFilename: "me.png",
		Data:             pngBytes(t, 1024, 768),
	})
	require.NoError(t, err)

	fileKey := "avatars/" + user.UUID.String() + ".jpg"
	require.Contains(t, env.storage.saved, fileKey)
	assert.Contains(t, resp.AvatarURL, fileKey)

	// The stored image is a JPEG within the size bound
	img, format, err := image.Decode(bytes.NewReader(env.storage.saved[fileKey]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 512)
	assert.LessOrEqual(t, img.Bounds().Dy(), 512)

	require.NotNil(t, user.AvatarPath)
	assert.Equal(t, fileKey, *user.AvatarPath)
}

func TestUploadAvatarRejectsBadInput(t *testing.T) {
	env := newProfileEnv()
	env.users.Users = append(env.users.Users, apptesting.NewTestUser(1, "alice"))

	_, err := env.flow.UploadAvatar(context.Background(), &dto.UploadAvatarRequest{
		UserID:           1,
		OriginalFilename: "me.bmp",
		Data:             pngBytes(t, 10, 10),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFileType))

	_, err = env.flow.UploadAvatar(context.Background(), &dto.UploadAvatarRequest{
		UserID:           1,
		OriginalFilename: "me.png",
		Data:             []byte("not an image"),
	})
	require.Error(t, err)
}

func TestGetPublicProfileFiltersHiddenEntries(t *testing.T) {
	env := newProfileEnv()
	user := apptesting.NewTestUser(1, "alice")
	env.users.Users = append(env.users.Users, user)

	active := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	hidden := apptesting.NewTestLink(1, "Old", "https://old.example.com", "globe", 1)
	hidden.IsActive = utils.ToPtr(false)
	env.links.Links = append(env.links.Links, active, hidden)

	env.docs.Docs = append(env.docs.Docs, apptesting.NewTestDocument(1, "Resume", "resume"))

	resp, err := env.flow.GetPublicProfile(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.UserID)
	assert.Equal(t, "alice", resp.Username)
	require.Len(t, resp.SocialLinks, 1)
	assert.Equal(t, "GitHub", resp.SocialLinks[0].Title)
	require.Len(t, resp.Documents, 1)
}

func TestGetPublicProfileUnknownOrInactiveUser(t *testing.T) {
	env := newProfileEnv()
	inactive := apptesting.NewTestUser(1, "ghost")
	inactive.IsActive = utils.ToPtr(false)
	env.users.Users = append(env.users.Users, inactive)

	for _, username := range []string{"nobody", "ghost"} {
		_, err := env.flow.GetPublicProfile(context.Background(), username)
		require.Error(t, err, username)
		assert.True(t, errors.Is(err, ErrProfileNotFound))
	}
}
