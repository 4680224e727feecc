package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type navigationRequest struct {
	Label     string `json:"label"`
	Path      string `json:"path"`
	Location  string `json:"location"`
	ParentID  *uint  `json:"parentId"`
	SortOrder *int   `json:"sortOrder"`
	IsVisible *bool  `json:"isVisible"`
}

func (r navigationRequest) toInput() service.NavigationInput {
	return service.NavigationInput{
		Label:     r.Label,
		Path:      r.Path,
		Location:  r.Location,
		ParentID:  r.ParentID,
		SortOrder: r.SortOrder,
		IsVisible: r.IsVisible,
	}
}

type moveRequest struct {
	Index     *int   `json:"index" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// GetNavigationItems 获取全部导航项
func (a *API) GetNavigationItems(c *gin.Context) {
	items, err := a.navigation.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetNavigationItem 获取单个导航项
func (a *API) GetNavigationItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.navigation.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateNavigationItem 新增导航项
func (a *API) CreateNavigationItem(c *gin.Context) {
	var req navigationRequest
	if !bindJSON(c, &req, "请填写完整的导航信息") {
		return
	}
	item, err := a.navigation.Create(c.Request.Context(), req.toInput())
	respondResult(c, item, err, "导航已创建")
}

// UpdateNavigationItem 更新导航项
func (a *API) UpdateNavigationItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req navigationRequest
	if !bindJSON(c, &req, "请填写完整的导航信息") {
		return
	}
	item, err := a.navigation.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, item, err, "导航已更新")
}

// DeleteNavigationItem 删除导航项，子项会被提升为顶级
func (a *API) DeleteNavigationItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.navigation.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "导航已删除")
}

// MoveNavigationItem 将 index 位置的导航项上移或下移一位，返回新的完整顺序
func (a *API) MoveNavigationItem(c *gin.Context) {
	var req moveRequest
	if !bindJSON(c, &req, "请提供 index 与 direction") {
		return
	}
	items, err := a.navigation.Move(c.Request.Context(), *req.Index, service.Direction(req.Direction))
	respondResult(c, items, err, "导航顺序已更新")
}

// ReorderNavigation 按给定 ID 顺序重写全部排序
func (a *API) ReorderNavigation(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req, "请提供完整的导航顺序") {
		return
	}
	if err := a.navigation.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondResult(c, nil, err, "")
		return
	}
	items, err := a.navigation.List(c.Request.Context())
	respondResult(c, items, err, "导航顺序已更新")
}
