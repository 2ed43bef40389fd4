package dto

// LinkPerformanceDTO aggregates clicks per link
type LinkPerformanceDTO struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Icon   string `json:"icon"`
	Clicks int64  `json:"clicks"`
}

// TopLinkDTO names the best performing link
type TopLinkDTO struct {
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// DailyClicksDTO is one day of click activity
type DailyClicksDTO struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// AnalyticsResponse is the dashboard read model: totals, per-link performance,
// and the last seven days of activity.
type AnalyticsResponse struct {
	Message         string               `json:"message"`
	TotalClicks     int64                `json:"total_clicks"`
	ProfileViews    int64                `json:"profile_views"`
	TopLink         *TopLinkDTO          `json:"top_link,omitempty"`
	ClickRate       float64              `json:"click_rate"`
	LinkPerformance []LinkPerformanceDTO `json:"link_performance"`
	RecentActivity  []DailyClicksDTO     `json:"recent_activity"`
}
