package integration

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const defaultPageSpeedBaseURL = "https://www.googleapis.com/pagespeedonline/v5"

var pageSpeedCategories = []string{"performance", "accessibility", "best-practices", "seo"}

var coreWebVitals = []string{
	"first-contentful-paint",
	"largest-contentful-paint",
	"cumulative-layout-shift",
	"total-blocking-time",
	"speed-index",
}

// Vital 单项性能指标
type Vital struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// PageSpeedReport Lighthouse 分类得分 (0-100) 与核心指标
type PageSpeedReport struct {
	URL       string           `json:"url"`
	Scores    map[string]int   `json:"scores"`
	Vitals    map[string]Vital `json:"vitals"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// PageSpeed 调用 PageSpeed Insights，结果按 URL 缓存
type PageSpeed struct {
	targetURL string
	apiKey    string
	baseURL   string
	client    httpDoer
	cache     *cache.Cache
	now       func() time.Time
}

// NewPageSpeed 构造 PageSpeed，targetURL 为空时视为未配置；apiKey 可选
func NewPageSpeed(targetURL, apiKey string, ttl time.Duration) *PageSpeed {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PageSpeed{
		targetURL: strings.TrimSpace(targetURL),
		apiKey:    strings.TrimSpace(apiKey),
		baseURL:   defaultPageSpeedBaseURL,
		client:    &http.Client{Timeout: 60 * time.Second},
		cache:     cache.New(ttl, 2*ttl),
		now:       time.Now,
	}
}

// Configured reports whether a target URL is set.
func (p *PageSpeed) Configured() bool {
	return p != nil && p.targetURL != ""
}

// SetHTTPClient 替换 HTTP 客户端
func (p *PageSpeed) SetHTTPClient(client httpDoer) {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	p.client = client
}

// SetBaseURL 覆盖 API 地址
func (p *PageSpeed) SetBaseURL(base string) {
	p.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

type pageSpeedResponse struct {
	LighthouseResult struct {
		Categories map[string]struct {
			Score *float64 `json:"score"`
		} `json:"categories"`
		Audits map[string]struct {
			NumericValue float64 `json:"numericValue"`
			DisplayValue string  `json:"displayValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// Audit 返回目标页面的 Lighthouse 评分，缓存未过期时不会重复请求
func (p *PageSpeed) Audit(ctx context.Context) (*PageSpeedReport, error) {
	if !p.Configured() {
		return nil, nil
	}
	if cached, ok := p.cache.Get(p.targetURL); ok {
		if report, ok := cached.(*PageSpeedReport); ok {
			return report, nil
		}
	}

	query := url.Values{}
	query.Set("url", p.targetURL)
	query.Set("strategy", "mobile")
	for _, category := range pageSpeedCategories {
		query.Add("category", category)
	}
	if p.apiKey != "" {
		query.Set("key", p.apiKey)
	}
	endpoint := p.baseURL + "/runPagespeed?" + query.Encode()

	var payload pageSpeedResponse
	if err := doJSON(ctx, p.client, http.MethodGet, endpoint, "", nil, &payload); err != nil {
		return nil, err
	}

	report := &PageSpeedReport{
		URL:       p.targetURL,
		Scores:    make(map[string]int, len(pageSpeedCategories)),
		Vitals:    make(map[string]Vital, len(coreWebVitals)),
		FetchedAt: p.now().UTC(),
	}
	for _, category := range pageSpeedCategories {
		entry, ok := payload.LighthouseResult.Categories[category]
		if !ok || entry.Score == nil {
			continue
		}
		report.Scores[category] = int(*entry.Score*100 + 0.5)
	}
	for _, name := range coreWebVitals {
		audit, ok := payload.LighthouseResult.Audits[name]
		if !ok {
			continue
		}
		report.Vitals[name] = Vital{Value: audit.NumericValue, Display: audit.DisplayValue}
	}

	p.cache.Set(p.targetURL, report, cache.DefaultExpiration)
	return report, nil
}

// Invalidate 清除缓存，下次 Audit 会重新请求
func (p *PageSpeed) Invalidate() {
	p.cache.Flush()
}
