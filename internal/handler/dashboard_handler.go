package handler

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	dashboardRecentSubmissions = 5
	dashboardSearchDays        = 28
	dashboardWidgetTimeout     = 8 * time.Second
)

// widget 是仪表盘上一个外部数据卡片，数据源未配置或失败时 available 为 false
type widget struct {
	Available bool `json:"available"`
	Data      any  `json:"data,omitempty"`
}

func widgetOf[T any](data *T, err error, name string) widget {
	if err != nil {
		log.Printf("[dashboard] %s unavailable: %v", name, err)
		return widget{}
	}
	if data == nil {
		return widget{}
	}
	return widget{Available: true, Data: data}
}

// GetDashboard 汇总内容统计、最新留言以及各外部数据源
func (a *API) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := a.dashboard.Counts(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	recent, err := a.contact.List(ctx, dashboardRecentSubmissions)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	widgets := a.collectWidgets(ctx)

	response := gin.H{
		"counts":            counts,
		"recentSubmissions": recent,
		"integrations":      widgets,
	}
	if admin, ok := currentAdmin(c); ok {
		response["admin"] = adminPayload(admin)
	}
	c.JSON(http.StatusOK, response)
}

// collectWidgets 并发请求各数据源，单个数据源超时不影响其它卡片
func (a *API) collectWidgets(parent context.Context) map[string]widget {
	ctx, cancel := context.WithTimeout(parent, dashboardWidgetTimeout)
	defer cancel()

	suite := a.integrations
	sources := map[string]func() widget{}
	if suite.Analytics != nil {
		sources["realtime"] = func() widget {
			report, err := suite.Analytics.RealtimeVisitors(ctx)
			return widgetOf(report, err, "realtime analytics")
		}
	}
	if suite.SearchConsole != nil {
		sources["searchConsole"] = func() widget {
			report, err := suite.SearchConsole.Performance(ctx, dashboardSearchDays)
			return widgetOf(report, err, "search console")
		}
	}
	if suite.PageSpeed != nil {
		sources["pageSpeed"] = func() widget {
			report, err := suite.PageSpeed.Audit(ctx)
			return widgetOf(report, err, "pagespeed")
		}
	}
	if suite.Host != nil {
		sources["host"] = func() widget {
			snapshot, err := suite.Host.Snapshot(ctx)
			return widgetOf(snapshot, err, "host stats")
		}
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = map[string]widget{
			"realtime":      {},
			"searchConsole": {},
			"pageSpeed":     {},
			"host":          {},
		}
	)
	for name, fetch := range sources {
		wg.Add(1)
		go func(name string, fetch func() widget) {
			defer wg.Done()
			result := fetch()
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, fetch)
	}
	wg.Wait()
	return results
}
