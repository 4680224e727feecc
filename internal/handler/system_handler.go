package handler

import (
	"net/http"
	"strconv"

	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

// HealthCheck 提供负载均衡与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

type settingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// GetSiteSettings 返回全部站点设置，prefix 可用于筛选分组（如 theme_）。
func (a *API) GetSiteSettings(c *gin.Context) {
	records, err := a.settings.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	settings := make(map[string]string, len(records))
	for _, record := range records {
		settings[record.SettingKey] = record.SettingValue
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSiteSettings 在一个事务内保存多项设置，任何一项无效则全部不写入。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var req settingsRequest
	if !bindJSON(c, &req, "请提供要保存的设置") {
		return
	}
	saved, err := a.settings.SetMany(c.Request.Context(), req.Settings)
	respondResult(c, saved, err, "设置已保存")
}

type sectionVisibilityRequest struct {
	Sections map[string]bool `json:"sections" binding:"required"`
}

// GetSectionVisibility 返回首页各区块的开关
func (a *API) GetSectionVisibility(c *gin.Context) {
	sections, err := a.settings.SectionVisibility(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "order": service.SectionIDs})
}

// UpdateSectionVisibility 批量修改区块开关
func (a *API) UpdateSectionVisibility(c *gin.Context) {
	var req sectionVisibilityRequest
	if !bindJSON(c, &req, "请提供区块开关") {
		return
	}
	values := make(map[string]string, len(req.Sections))
	for id, visible := range req.Sections {
		values[db.SectionVisibilityKey(id)] = strconv.FormatBool(visible)
	}
	if _, err := a.settings.SetMany(c.Request.Context(), values); err != nil {
		respondResult(c, nil, err, "")
		return
	}
	sections, err := a.settings.SectionVisibility(c.Request.Context())
	respondResult(c, sections, err, "区块显示设置已保存")
}
