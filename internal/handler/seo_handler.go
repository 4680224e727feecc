package handler

import (
	"net/http"

	"github.com/folio/internal/form"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type seoRequest struct {
	Route       string `json:"route" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	OgImage     string `json:"ogImage"`
}

// GetSeoDefaults 返回全部路由的 SEO 配置，带 route 参数时只返回该路由
func (a *API) GetSeoDefaults(c *gin.Context) {
	if route := c.Query("route"); route != "" {
		row, err := a.seo.Get(c.Request.Context(), route)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"seo": row})
		return
	}

	rows, err := a.seo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seo": rows})
}

// UpsertSeoDefault 创建或覆盖一条路由的 SEO 配置
func (a *API) UpsertSeoDefault(c *gin.Context) {
	var req seoRequest
	if !bindJSON(c, &req, "请提供路由与标题") {
		return
	}
	row, err := a.seo.Upsert(c.Request.Context(), req.Route, service.SeoInput{
		Title:       req.Title,
		Description: req.Description,
		Keywords:    form.NormalizeCSV(req.Keywords),
		OgImage:     req.OgImage,
	})
	respondResult(c, row, err, "SEO 设置已保存")
}

// DeleteSeoDefault 删除 route 参数指定的 SEO 配置
func (a *API) DeleteSeoDefault(c *gin.Context) {
	route := c.Query("route")
	if route == "" {
		respondFailure(c, http.StatusBadRequest, "请提供 route 参数")
		return
	}
	err := a.seo.Delete(c.Request.Context(), route)
	respondResult(c, nil, err, "SEO 设置已删除")
}
