package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUIDShaped(t *testing.T) {
	t.Run("CanonicalUUIDs", func(t *testing.T) {
		assert.True(t, IsUUIDShaped("3fa85f64-5717-4562-b3fc-2c963f66afa6"))
		assert.True(t, IsUUIDShaped("3FA85F64-5717-4562-B3FC-2C963F66AFA6"))
		assert.True(t, IsUUIDShaped("00000000-0000-1000-8000-000000000000"))
		assert.True(t, IsUUIDShaped("ffffffff-ffff-5fff-bfff-ffffffffffff"))
	})

	t.Run("NonUUIDs", func(t *testing.T) {
		assert.False(t, IsUUIDShaped(""))
		assert.False(t, IsUUIDShaped("my-resume"))
		assert.False(t, IsUUIDShaped("github"))
		// version nibble outside 1..5
		assert.False(t, IsUUIDShaped("3fa85f64-5717-0562-b3fc-2c963f66afa6"))
		assert.False(t, IsUUIDShaped("3fa85f64-5717-6562-b3fc-2c963f66afa6"))
		// variant nibble outside 8..b
		assert.False(t, IsUUIDShaped("3fa85f64-5717-4562-73fc-2c963f66afa6"))
		assert.False(t, IsUUIDShaped("3fa85f64-5717-4562-c3fc-2c963f66afa6"))
		// wrong grouping and notation
		assert.False(t, IsUUIDShaped("3fa85f6457174562b3fc2c963f66afa6"))
		assert.False(t, IsUUIDShaped("{3fa85f64-5717-4562-b3fc-2c963f66afa6}"))
		assert.False(t, IsUUIDShaped("urn:uuid:3fa85f64-5717-4562-b3fc-2c963f66afa6"))
	})
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-github", Slugify("My GitHub"))
	assert.Equal(t, "my-github", Slugify("my github"))
	assert.Equal(t, "a-b-c", Slugify("A  B\tC"))
	assert.Equal(t, "github", Slugify("GitHub"))
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "my-resume", NormalizeSlug("My Resume"))
	assert.Equal(t, "my-resume", NormalizeSlug("  My---Resume!  "))
	assert.Equal(t, "q3-report-2026", NormalizeSlug("Q3 Report (2026)"))
	assert.Equal(t, "", NormalizeSlug("!!!"))
	assert.Equal(t, "", NormalizeSlug(""))
}
