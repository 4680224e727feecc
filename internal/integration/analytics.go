package integration

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const defaultAnalyticsBaseURL = "https://analyticsdata.googleapis.com/v1beta"

// MinutePoint 实时访客的分钟序列，MinutesAgo=0 表示当前分钟
type MinutePoint struct {
	MinutesAgo  int `json:"minutesAgo"`
	ActiveUsers int `json:"activeUsers"`
}

// RealtimeReport GA4 实时报告
type RealtimeReport struct {
	ActiveUsers int           `json:"activeUsers"`
	Minutes     []MinutePoint `json:"minutes"`
}

// Analytics 读取 GA4 实时访客
type Analytics struct {
	propertyID  string
	accessToken string
	baseURL     string
	client      httpDoer
}

// NewAnalytics 构造 Analytics，propertyID 或 accessToken 为空时视为未配置
func NewAnalytics(propertyID, accessToken string) *Analytics {
	return &Analytics{
		propertyID:  strings.TrimSpace(propertyID),
		accessToken: strings.TrimSpace(accessToken),
		baseURL:     defaultAnalyticsBaseURL,
		client:      defaultHTTPClient(),
	}
}

// Configured reports whether both the property and the token are set.
func (a *Analytics) Configured() bool {
	return a != nil && a.propertyID != "" && a.accessToken != ""
}

// SetHTTPClient 替换 HTTP 客户端，主要用于测试
func (a *Analytics) SetHTTPClient(client httpDoer) {
	if client == nil {
		client = defaultHTTPClient()
	}
	a.client = client
}

// SetBaseURL 覆盖 API 地址
func (a *Analytics) SetBaseURL(base string) {
	a.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

type realtimeResponse struct {
	Rows []struct {
		DimensionValues []struct {
			Value string `json:"value"`
		} `json:"dimensionValues"`
		MetricValues []struct {
			Value string `json:"value"`
		} `json:"metricValues"`
	} `json:"rows"`
}

// RealtimeVisitors 返回最近 30 分钟的活跃访客，未配置时返回 nil
func (a *Analytics) RealtimeVisitors(ctx context.Context) (*RealtimeReport, error) {
	if !a.Configured() {
		return nil, nil
	}

	endpoint := a.baseURL + "/properties/" + url.PathEscape(a.propertyID) + ":runRealtimeReport"
	body := map[string]any{
		"dimensions": []map[string]string{{"name": "minutesAgo"}},
		"metrics":    []map[string]string{{"name": "activeUsers"}},
	}

	var payload realtimeResponse
	if err := doJSON(ctx, a.client, http.MethodPost, endpoint, a.accessToken, body, &payload); err != nil {
		return nil, err
	}

	report := &RealtimeReport{Minutes: make([]MinutePoint, 0, len(payload.Rows))}
	for _, row := range payload.Rows {
		if len(row.DimensionValues) == 0 || len(row.MetricValues) == 0 {
			continue
		}
		minutesAgo, err := strconv.Atoi(row.DimensionValues[0].Value)
		if err != nil {
			continue
		}
		users, err := strconv.Atoi(row.MetricValues[0].Value)
		if err != nil {
			continue
		}
		report.ActiveUsers += users
		report.Minutes = append(report.Minutes, MinutePoint{MinutesAgo: minutesAgo, ActiveUsers: users})
	}
	sort.Slice(report.Minutes, func(i, j int) bool {
		return report.Minutes[i].MinutesAgo < report.Minutes[j].MinutesAgo
	})
	return report, nil
}
