// Package integration 封装仪表盘使用的外部数据源：Google Analytics、Search Console、
// PageSpeed Insights 以及本机资源占用。未配置的数据源返回 nil，由调用方标记为不可用。
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/folio/internal/config"
)

const userAgent = "folio-dashboard/1.0"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func defaultHTTPClient() httpDoer {
	return &http.Client{Timeout: 10 * time.Second}
}

// Suite groups every dashboard data source.
type Suite struct {
	Analytics     *Analytics
	SearchConsole *SearchConsole
	PageSpeed     *PageSpeed
	Host          *HostStats
}

// New 根据配置构造全部数据源
func New(cfg config.IntegrationConfig) *Suite {
	return &Suite{
		Analytics:     NewAnalytics(cfg.GAPropertyID, cfg.GAAccessToken),
		SearchConsole: NewSearchConsole(cfg.SearchConsoleSite, cfg.SearchConsoleAccessToken),
		PageSpeed:     NewPageSpeed(cfg.PageSpeedURL, cfg.PageSpeedAPIKey, cfg.PageSpeedCacheTTL),
		Host:          NewHostStats(cfg.HostDiskPath),
	}
}

// doJSON 发送请求并把 2xx 响应解析到 out，非 2xx 时附带响应片段返回错误
func doJSON(ctx context.Context, client httpDoer, method, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(snippet))
		if msg != "" {
			return fmt.Errorf("%s returned %s (%s)", req.URL.Host, resp.Status, msg)
		}
		return fmt.Errorf("%s returned %s", req.URL.Host, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Host, err)
	}
	return nil
}
