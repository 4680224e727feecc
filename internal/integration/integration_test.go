package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/folio/internal/config"
)

func TestUnconfiguredSourcesReturnNil(t *testing.T) {
	suite := New(config.IntegrationConfig{})
	ctx := context.Background()

	if report, err := suite.Analytics.RealtimeVisitors(ctx); report != nil || err != nil {
		t.Fatalf("expected nil analytics report, got %+v (%v)", report, err)
	}
	if perf, err := suite.SearchConsole.Performance(ctx, 7); perf != nil || err != nil {
		t.Fatalf("expected nil search performance, got %+v (%v)", perf, err)
	}
	if audit, err := suite.PageSpeed.Audit(ctx); audit != nil || err != nil {
		t.Fatalf("expected nil pagespeed audit, got %+v (%v)", audit, err)
	}
}

func TestAnalyticsRealtimeVisitors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/properties/123:runRealtimeReport" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows":[
			{"dimensionValues":[{"value":"02"}],"metricValues":[{"value":"4"}]},
			{"dimensionValues":[{"value":"00"}],"metricValues":[{"value":"3"}]},
			{"dimensionValues":[{"value":"oops"}],"metricValues":[{"value":"9"}]}
		]}`))
	}))
	defer server.Close()

	analytics := NewAnalytics("123", "token")
	analytics.SetBaseURL(server.URL)
	analytics.SetHTTPClient(server.Client())

	report, err := analytics.RealtimeVisitors(context.Background())
	if err != nil {
		t.Fatalf("realtime visitors: %v", err)
	}
	if report.ActiveUsers != 7 {
		t.Fatalf("expected 7 active users, got %d", report.ActiveUsers)
	}
	if len(report.Minutes) != 2 || report.Minutes[0].MinutesAgo != 0 || report.Minutes[1].MinutesAgo != 2 {
		t.Fatalf("unexpected minute series %+v", report.Minutes)
	}
}

func TestAnalyticsSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"PERMISSION_DENIED"}`, http.StatusForbidden)
	}))
	defer server.Close()

	analytics := NewAnalytics("123", "token")
	analytics.SetBaseURL(server.URL)
	analytics.SetHTTPClient(server.Client())

	report, err := analytics.RealtimeVisitors(context.Background())
	if err == nil || report != nil {
		t.Fatalf("expected error, got %+v (%v)", report, err)
	}
	if !strings.Contains(err.Error(), "PERMISSION_DENIED") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestSearchConsolePerformance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/searchAnalytics/query") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["startDate"] != "2024-05-25" || body["endDate"] != "2024-05-31" {
			t.Errorf("unexpected range %v - %v", body["startDate"], body["endDate"])
		}
		_, _ = w.Write([]byte(`{"rows":[
			{"keys":["2024-05-30"],"clicks":3,"impressions":100,"ctr":0.03,"position":8.2},
			{"keys":["2024-05-31"],"clicks":5,"impressions":120,"ctr":0.04,"position":7.9}
		]}`))
	}))
	defer server.Close()

	console := NewSearchConsole("sc-domain:example.com", "token")
	console.SetBaseURL(server.URL)
	console.SetHTTPClient(server.Client())
	console.now = func() time.Time { return time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC) }

	perf, err := console.Performance(context.Background(), 7)
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if perf.Clicks != 8 || perf.Impressions != 220 || len(perf.Days) != 2 {
		t.Fatalf("unexpected performance %+v", perf)
	}
	if perf.Days[1].Date != "2024-05-31" {
		t.Fatalf("unexpected day order %+v", perf.Days)
	}
}

func TestPageSpeedAuditIsCached(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		query := r.URL.Query()
		if query.Get("url") != "https://example.com" || query.Get("key") != "k" {
			t.Errorf("unexpected query %v", query)
		}
		if len(query["category"]) != 4 {
			t.Errorf("expected four categories, got %v", query["category"])
		}
		_, _ = w.Write([]byte(`{"lighthouseResult":{
			"categories":{"performance":{"score":0.934},"accessibility":{"score":1},"seo":{"score":null}},
			"audits":{"largest-contentful-paint":{"numericValue":1834.5,"displayValue":"1.8 s"}}
		}}`))
	}))
	defer server.Close()

	speed := NewPageSpeed("https://example.com", "k", time.Minute)
	speed.SetBaseURL(server.URL)
	speed.SetHTTPClient(server.Client())

	first, err := speed.Audit(context.Background())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if first.Scores["performance"] != 93 || first.Scores["accessibility"] != 100 {
		t.Fatalf("unexpected scores %v", first.Scores)
	}
	if _, ok := first.Scores["seo"]; ok {
		t.Fatal("expected null score to be skipped")
	}
	if first.Vitals["largest-contentful-paint"].Display != "1.8 s" {
		t.Fatalf("unexpected vitals %v", first.Vitals)
	}

	if _, err := speed.Audit(context.Background()); err != nil {
		t.Fatalf("second audit: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected cached result, got %d upstream calls", got)
	}

	speed.Invalidate()
	if _, err := speed.Audit(context.Background()); err != nil {
		t.Fatalf("audit after invalidate: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", got)
	}
}

func TestHostStatsSnapshot(t *testing.T) {
	snapshot, err := NewHostStats(t.TempDir()).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot == nil {
		t.Skip("host metrics unavailable in this environment")
	}
	if snapshot.CapturedAt.IsZero() {
		t.Fatal("expected capture time to be set")
	}
	if snapshot.DiskTotalBytes > 0 && snapshot.DiskUsedBytes > snapshot.DiskTotalBytes {
		t.Fatalf("disk used exceeds total: %+v", snapshot)
	}
}
