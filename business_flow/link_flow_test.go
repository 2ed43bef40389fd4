package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck/linkdeck/app/dto"
	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

func newLinkFlow(links *apptesting.FakeSocialLinkRepository) LinkFlow {
	return NewLinkFlow(links, nil)
}

func TestCreateLinkAppendsAtEnd(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	links.Links = append(links.Links,
		apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0),
		apptesting.NewTestLink(1, "Blog", "https://blog.example.com", "globe", 1),
	)
	flow := newLinkFlow(links)

	resp, err := flow.CreateLink(context.Background(), 1, &dto.CreateLinkRequest{
		Title: "Twitter",
		URL:   "https://twitter.com/alice",
		Icon:  "twitter",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Link.Position)
	assert.True(t, resp.Link.IsActive)
}

func TestUpdateLinkAppliesOnlyProvidedFields(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	link := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	links.Links = append(links.Links, link)
	flow := newLinkFlow(links)

	resp, err := flow.UpdateLink(context.Background(), 1, link.ID, &dto.UpdateLinkRequest{
		Title:    utils.ToPtr("Code"),
		IsActive: utils.ToPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Code", resp.Link.Title)
	assert.Equal(t, "https://github.com/alice", resp.Link.URL)
	assert.False(t, resp.Link.IsActive)
}

func TestUpdateLinkOwnership(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	link := apptesting.NewTestLink(2, "GitHub", "https://github.com/bob", "github", 0)
	links.Links = append(links.Links, link)
	flow := newLinkFlow(links)

	_, err := flow.UpdateLink(context.Background(), 1, link.ID, &dto.UpdateLinkRequest{Title: utils.ToPtr("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLinkAccessDenied))

	_, err = flow.UpdateLink(context.Background(), 1, uuid.New(), &dto.UpdateLinkRequest{Title: utils.ToPtr("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLinkNotFound))
}

func TestDeleteLinkRemovesOwnedLink(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	link := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	links.Links = append(links.Links, link)
	flow := newLinkFlow(links)

	require.NoError(t, flow.DeleteLink(context.Background(), 1, link.ID))
	assert.Empty(t, links.Links)
}

func TestReorderLinksAppliesPermutation(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	a := apptesting.NewTestLink(1, "A", "https://a.example.com", "globe", 0)
	b := apptesting.NewTestLink(1, "B", "https://b.example.com", "globe", 1)
	c := apptesting.NewTestLink(1, "C", "https://c.example.com", "globe", 2)
	links.Links = append(links.Links, a, b, c)
	flow := newLinkFlow(links)

	resp, err := flow.ReorderLinks(context.Background(), 1, &dto.ReorderLinksRequest{
		LinkIDs: []string{c.ID.String(), a.ID.String(), b.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, resp.Links, 3)
	assert.Equal(t, "C", resp.Links[0].Title)
	assert.Equal(t, "A", resp.Links[1].Title)
	assert.Equal(t, "B", resp.Links[2].Title)
}

func TestReorderLinksRejectsIncompletePermutations(t *testing.T) {
	links := &apptesting.FakeSocialLinkRepository{}
	a := apptesting.NewTestLink(1, "A", "https://a.example.com", "globe", 0)
	b := apptesting.NewTestLink(1, "B", "https://b.example.com", "globe", 1)
	links.Links = append(links.Links, a, b)
	flow := newLinkFlow(links)

	tests := []struct {
		name    string
		linkIDs []string
		wantErr error
	}{
		{"missing link", []string{a.ID.String()}, ErrReorderIncomplete},
		{"duplicate link", []string{a.ID.String(), a.ID.String()}, ErrReorderIncomplete},
		{"foreign link", []string{a.ID.String(), uuid.New().String()}, ErrLinkNotFound},
		{"malformed id", []string{a.ID.String(), "not-a-uuid"}, ErrLinkNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.ReorderLinks(context.Background(), 1, &dto.ReorderLinksRequest{LinkIDs: tt.linkIDs})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Nil(t, links.LastPositions, "no partial reorder may be applied")
		})
	}
}
