package integration

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSearchConsoleBaseURL = "https://www.googleapis.com/webmasters/v3"

// DailyPerformance 一天的搜索表现
type DailyPerformance struct {
	Date        string  `json:"date"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// SearchPerformance 汇总一段时间的搜索表现
type SearchPerformance struct {
	Clicks      float64            `json:"clicks"`
	Impressions float64            `json:"impressions"`
	Days        []DailyPerformance `json:"days"`
}

// SearchConsole 读取 Search Console 的搜索分析数据
type SearchConsole struct {
	site        string
	accessToken string
	baseURL     string
	client      httpDoer
	now         func() time.Time
}

// NewSearchConsole 构造 SearchConsole，site 或 accessToken 为空时视为未配置
func NewSearchConsole(site, accessToken string) *SearchConsole {
	return &SearchConsole{
		site:        strings.TrimSpace(site),
		accessToken: strings.TrimSpace(accessToken),
		baseURL:     defaultSearchConsoleBaseURL,
		client:      defaultHTTPClient(),
		now:         time.Now,
	}
}

// Configured reports whether the site and token are set.
func (s *SearchConsole) Configured() bool {
	return s != nil && s.site != "" && s.accessToken != ""
}

// SetHTTPClient 替换 HTTP 客户端
func (s *SearchConsole) SetHTTPClient(client httpDoer) {
	if client == nil {
		client = defaultHTTPClient()
	}
	s.client = client
}

// SetBaseURL 覆盖 API 地址
func (s *SearchConsole) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

type searchAnalyticsResponse struct {
	Rows []struct {
		Keys        []string `json:"keys"`
		Clicks      float64  `json:"clicks"`
		Impressions float64  `json:"impressions"`
		CTR         float64  `json:"ctr"`
		Position    float64  `json:"position"`
	} `json:"rows"`
}

// Performance 返回最近 days 天的每日点击与展示，未配置时返回 nil
func (s *SearchConsole) Performance(ctx context.Context, days int) (*SearchPerformance, error) {
	if !s.Configured() {
		return nil, nil
	}
	if days <= 0 {
		days = 28
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -(days - 1))
	endpoint := s.baseURL + "/sites/" + url.PathEscape(s.site) + "/searchAnalytics/query"
	body := map[string]any{
		"startDate":  start.Format("2006-01-02"),
		"endDate":    end.Format("2006-01-02"),
		"dimensions": []string{"date"},
	}

	var payload searchAnalyticsResponse
	if err := doJSON(ctx, s.client, http.MethodPost, endpoint, s.accessToken, body, &payload); err != nil {
		return nil, err
	}

	result := &SearchPerformance{Days: make([]DailyPerformance, 0, len(payload.Rows))}
	for _, row := range payload.Rows {
		if len(row.Keys) == 0 {
			continue
		}
		result.Clicks += row.Clicks
		result.Impressions += row.Impressions
		result.Days = append(result.Days, DailyPerformance{
			Date:        row.Keys[0],
			Clicks:      row.Clicks,
			Impressions: row.Impressions,
			CTR:         row.CTR,
			Position:    row.Position,
		})
	}
	return result, nil
}
