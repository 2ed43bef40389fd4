package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptesting "github.com/linkdeck/linkdeck/testing"
	"github.com/linkdeck/linkdeck/utils"
)

type analyticsEnv struct {
	links  *apptesting.FakeSocialLinkRepository
	clicks *apptesting.FakeLinkClickRepository
	views  *apptesting.FakeProfileViewRepository
	flow   AnalyticsFlow
}

func newAnalyticsEnv() *analyticsEnv {
	links := &apptesting.FakeSocialLinkRepository{}
	clicks := &apptesting.FakeLinkClickRepository{}
	views := &apptesting.FakeProfileViewRepository{}
	return &analyticsEnv{
		links:  links,
		clicks: clicks,
		views:  views,
		flow:   NewAnalyticsFlow(links, clicks, views),
	}
}

func TestRecordClickPersistsMetadata(t *testing.T) {
	env := newAnalyticsEnv()
	link := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	metadata := NewClientMetadata("10.0.0.1", "Mozilla/5.0")
	metadata.SetReferrer("https://twitter.com")

	env.flow.RecordClick(context.Background(), link.ID, metadata)

	require.Len(t, env.clicks.Clicks, 1)
	click := env.clicks.Clicks[0]
	assert.Equal(t, link.ID, click.LinkID)
	require.NotNil(t, click.IP)
	assert.Equal(t, "10.0.0.1", *click.IP)
	require.NotNil(t, click.Referrer)
	assert.Equal(t, "https://twitter.com", *click.Referrer)
	assert.False(t, click.ClickedAt.IsZero())
}

func TestRecordClickSwallowsStoreErrors(t *testing.T) {
	env := newAnalyticsEnv()
	env.clicks.Err = errors.New("disk full")

	// Must neither panic nor surface the error
	env.flow.RecordClick(context.Background(), apptesting.NewTestLink(1, "x", "https://x", "globe", 0).ID, NewClientMetadata("10.0.0.1", "ua"))
	assert.Equal(t, 1, env.clicks.SaveCalls)
}

func TestRecordProfileViewSwallowsStoreErrors(t *testing.T) {
	env := newAnalyticsEnv()
	env.views.Err = errors.New("disk full")

	env.flow.RecordProfileView(context.Background(), 1, NewClientMetadata("10.0.0.1", "ua"))
	assert.Equal(t, 1, env.views.SaveCalls)
}

func TestGetAnalyticsAggregates(t *testing.T) {
	env := newAnalyticsEnv()
	github := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	blog := apptesting.NewTestLink(1, "Blog", "https://blog.example.com", "globe", 1)
	env.links.Links = append(env.links.Links, github, blog)

	for i := 0; i < 3; i++ {
		env.clicks.Clicks = append(env.clicks.Clicks, apptesting.NewTestClick(github.ID))
	}
	env.clicks.Clicks = append(env.clicks.Clicks, apptesting.NewTestClick(blog.ID))

	for i := 0; i < 8; i++ {
		env.views.Views = append(env.views.Views, apptesting.NewTestView(1))
	}

	resp, err := env.flow.GetAnalytics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.TotalClicks)
	assert.Equal(t, int64(8), resp.ProfileViews)
	assert.InDelta(t, 0.5, resp.ClickRate, 1e-9)

	require.NotNil(t, resp.TopLink)
	assert.Equal(t, "GitHub", resp.TopLink.Title)
	assert.Equal(t, int64(3), resp.TopLink.Clicks)

	require.Len(t, resp.LinkPerformance, 2)
	assert.Equal(t, "GitHub", resp.LinkPerformance[0].Title, "performance must be sorted by clicks descending")
}

func TestGetAnalyticsSevenDayBuckets(t *testing.T) {
	env := newAnalyticsEnv()
	link := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	env.links.Links = append(env.links.Links, link)

	today := apptesting.NewTestClick(link.ID)
	yesterday := apptesting.NewTestClick(link.ID)
	yesterday.ClickedAt = utils.UTCNow().AddDate(0, 0, -1)
	stale := apptesting.NewTestClick(link.ID)
	stale.ClickedAt = utils.UTCNow().AddDate(0, 0, -30)
	env.clicks.Clicks = append(env.clicks.Clicks, today, yesterday, stale)

	resp, err := env.flow.GetAnalytics(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.RecentActivity, 7)
	assert.Equal(t, utils.DayKey(utils.UTCNow().AddDate(0, 0, -6)), resp.RecentActivity[0].Date, "oldest day first")
	assert.Equal(t, int64(1), resp.RecentActivity[6].Clicks)
	assert.Equal(t, int64(1), resp.RecentActivity[5].Clicks)
	assert.Equal(t, int64(0), resp.RecentActivity[4].Clicks, "days without clicks still appear")
}

func TestGetAnalyticsEmptyAccount(t *testing.T) {
	env := newAnalyticsEnv()

	resp, err := env.flow.GetAnalytics(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, resp.TotalClicks)
	assert.Nil(t, resp.TopLink)
	assert.Zero(t, resp.ClickRate)
	assert.Empty(t, resp.LinkPerformance)
	require.Len(t, resp.RecentActivity, 7)
}

func TestExportClicksProducesWorkbook(t *testing.T) {
	env := newAnalyticsEnv()
	link := apptesting.NewTestLink(1, "GitHub", "https://github.com/alice", "github", 0)
	env.links.Links = append(env.links.Links, link)
	env.clicks.Clicks = append(env.clicks.Clicks, apptesting.NewTestClick(link.ID))

	data, filename, err := env.flow.ExportClicks(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Regexp(t, `^clicks_\d{8}_\d{6}\.xlsx$`, filename)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
