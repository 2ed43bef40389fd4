package businessflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

// AnalyticsFlow records click and profile view events and serves the
// dashboard read side. Recording is best-effort: a failed insert is logged
// and swallowed so it can never break a redirect.
type AnalyticsFlow interface {
	RecordClick(ctx context.Context, linkID uuid.UUID, metadata *ClientMetadata)
	RecordProfileView(ctx context.Context, userID uint, metadata *ClientMetadata)
	GetAnalytics(ctx context.Context, userID uint) (*dto.AnalyticsResponse, error)
	ExportClicks(ctx context.Context, userID uint) ([]byte, string, error)
}

type AnalyticsFlowImpl struct {
	linkRepo  repository.SocialLinkRepository
	clickRepo repository.LinkClickRepository
	viewRepo  repository.ProfileViewRepository
}

func NewAnalyticsFlow(
	linkRepo repository.SocialLinkRepository,
	clickRepo repository.LinkClickRepository,
	viewRepo repository.ProfileViewRepository,
) AnalyticsFlow {
	return &AnalyticsFlowImpl{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
		viewRepo:  viewRepo,
	}
}

// RecordClick inserts a click event for a link. Errors are logged, never returned.
func (f *AnalyticsFlowImpl) RecordClick(ctx context.Context, linkID uuid.UUID, metadata *ClientMetadata) {
	click := &models.LinkClick{
		LinkID:    linkID,
		ClickedAt: utils.UTCNow(),
		UserAgent: metadata.userAgentPtr(),
		Referrer:  metadata.referrerPtr(),
		IP:        metadata.ipPtr(),
	}
	if err := f.clickRepo.Save(ctx, click); err != nil {
		log.Printf("analytics: click insert failed for link %s: %v", linkID, err)
	}
}

// RecordProfileView inserts a profile view event. Errors are logged, never returned.
func (f *AnalyticsFlowImpl) RecordProfileView(ctx context.Context, userID uint, metadata *ClientMetadata) {
	view := &models.ProfileView{
		UserID:    userID,
		ViewedAt:  utils.UTCNow(),
		UserAgent: metadata.userAgentPtr(),
		Referrer:  metadata.referrerPtr(),
		IP:        metadata.ipPtr(),
	}
	if err := f.viewRepo.Save(ctx, view); err != nil {
		log.Printf("analytics: profile view insert failed for user %d: %v", userID, err)
	}
}

// GetAnalytics aggregates clicks and views into the dashboard read model.
func (f *AnalyticsFlowImpl) GetAnalytics(ctx context.Context, userID uint) (*dto.AnalyticsResponse, error) {
	links, err := f.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_LINKS_FAILED", "Failed to list links for analytics", err)
	}

	linkIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		linkIDs = append(linkIDs, link.ID)
	}

	clicks, err := f.clickRepo.ListByLinkIDs(ctx, linkIDs)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_CLICKS_FAILED", "Failed to list clicks for analytics", err)
	}

	profileViews, err := f.viewRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_VIEWS_FAILED", "Failed to count profile views", err)
	}

	clicksByLink := make(map[uuid.UUID]int64, len(links))
	for _, click := range clicks {
		clicksByLink[click.LinkID]++
	}

	performance := make([]dto.LinkPerformanceDTO, 0, len(links))
	var topLink *dto.TopLinkDTO
	for _, link := range links {
		count := clicksByLink[link.ID]
		performance = append(performance, dto.LinkPerformanceDTO{
			ID:     link.ID.String(),
			Title:  link.Title,
			URL:    link.URL,
			Icon:   link.Icon,
			Clicks: count,
		})
		if topLink == nil || count > topLink.Clicks {
			topLink = &dto.TopLinkDTO{Title: link.Title, Clicks: count}
		}
	}
	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].Clicks > performance[j].Clicks
	})
	if len(links) == 0 {
		topLink = nil
	}

	totalClicks := int64(len(clicks))

	clickRate := 0.0
	if profileViews > 0 {
		clickRate = float64(totalClicks) / float64(profileViews)
	}

	return &dto.AnalyticsResponse{
		Message:         "Analytics retrieved successfully",
		TotalClicks:     totalClicks,
		ProfileViews:    profileViews,
		TopLink:         topLink,
		ClickRate:       clickRate,
		LinkPerformance: performance,
		RecentActivity:  dailyBuckets(clicks, 7),
	}, nil
}

// dailyBuckets groups clicks into per-day counts for the trailing window,
// oldest day first. Days without clicks still appear with a zero count.
func dailyBuckets(clicks []*models.LinkClick, days int) []dto.DailyClicksDTO {
	counts := make(map[string]int64)
	for _, click := range clicks {
		counts[utils.DayKey(click.ClickedAt)]++
	}

	buckets := make([]dto.DailyClicksDTO, 0, days)
	now := utils.UTCNow()
	for i := days - 1; i >= 0; i-- {
		day := utils.DayKey(now.AddDate(0, 0, -i))
		buckets = append(buckets, dto.DailyClicksDTO{Date: day, Clicks: counts[day]})
	}
	return buckets
}

// ExportClicks renders the user's click history as an xlsx workbook.
func (f *AnalyticsFlowImpl) ExportClicks(ctx context.Context, userID uint) ([]byte, string, error) {
	links, err := f.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, "", NewBusinessError("ANALYTICS_EXPORT_FAILED", "Failed to list links for export", err)
	}

	linkIDs := make([]uuid.UUID, 0, len(links))
	titleByLink := make(map[uuid.UUID]string, len(links))
	for _, link := range links {
		linkIDs = append(linkIDs, link.ID)
		titleByLink[link.ID] = link.Title
	}

	clicks, err := f.clickRepo.ListByLinkIDs(ctx, linkIDs)
	if err != nil {
		return nil, "", NewBusinessError("ANALYTICS_EXPORT_FAILED", "Failed to list clicks for export", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "clicks"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"link_id", "link_title", "clicked_at", "user_agent", "referrer", "ip"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, click := range clicks {
		record := []string{
			click.LinkID.String(),
			titleByLink[click.LinkID],
			click.ClickedAt.Format(time.RFC3339),
			utils.Deref(click.UserAgent),
			utils.Deref(click.Referrer),
			utils.Deref(click.IP),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, "", NewBusinessError("ANALYTICS_EXPORT_FAILED", "Failed to render export workbook", err)
	}

	filename := fmt.Sprintf("clicks_%s.xlsx", utils.UTCNow().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
