package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorageService(root, "https://cdn.example.com/")
	require.NoError(t, err)

	data := []byte("hello")
	require.NoError(t, storage.Save(context.Background(), "avatars/abc.jpg", data, "image/jpeg"))

	stored, err := os.ReadFile(filepath.Join(root, "avatars", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, storage.Delete(context.Background(), "avatars/abc.jpg"))
	_, err = os.Stat(filepath.Join(root, "avatars", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error
	assert.NoError(t, storage.Delete(context.Background(), "avatars/abc.jpg"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorageService(root, "https://cdn.example.com")
	require.NoError(t, err)

	for _, key := range []string{"../outside.txt", "a/../../outside.txt", "/etc/passwd", "."} {
		err := storage.Save(context.Background(), key, []byte("x"), "text/plain")
		assert.Error(t, err, "key %q", key)
	}
}

func TestLocalStoragePublicFileURL(t *testing.T) {
	storage, err := NewLocalStorageService(t.TempDir(), "https://cdn.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/documents/1/a.pdf", storage.PublicFileURL("documents/1/a.pdf"))
	assert.Equal(t, "https://cdn.example.com/a.pdf", storage.PublicFileURL("/a.pdf"))
}

func TestNewLocalStorageRequiresRoot(t *testing.T) {
	_, err := NewLocalStorageService("", "https://cdn.example.com")
	assert.Error(t, err)
}
