package handler

import (
	"net/http"

	"github.com/folio/internal/db"
	"github.com/folio/internal/form"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type offeringRequest struct {
	ServiceType   string         `json:"serviceType"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Features      form.LineList  `json:"features"`
	PriceText     string         `json:"priceText"`
	IsRecommended bool           `json:"isRecommended"`
	TechFocus     form.CommaList `json:"techFocus"`
	SortOrder     *int           `json:"sortOrder"`
	IsVisible     *bool          `json:"isVisible"`
}

func (r offeringRequest) toInput() service.OfferingInput {
	return service.OfferingInput{
		ServiceType:   r.ServiceType,
		Title:         r.Title,
		Description:   r.Description,
		Features:      r.Features,
		PriceText:     r.PriceText,
		IsRecommended: r.IsRecommended,
		TechFocus:     r.TechFocus,
		SortOrder:     r.SortOrder,
		IsVisible:     r.IsVisible,
	}
}

func offeringFormPayload(offering *db.Service) gin.H {
	return gin.H{
		"id":            offering.ID,
		"serviceType":   offering.ServiceType,
		"title":         offering.Title,
		"description":   offering.Description,
		"features":      form.Join(offering.Features, form.Newline),
		"priceText":     offering.PriceText,
		"isRecommended": offering.IsRecommended,
		"techFocus":     form.Join(offering.TechFocus, form.Comma),
		"sortOrder":     offering.SortOrder,
		"isVisible":     offering.IsVisible,
	}
}

// GetOfferings 获取全部服务套餐，推荐项在前
func (a *API) GetOfferings(c *gin.Context) {
	offerings, err := a.offerings.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings, "serviceTypes": db.ServiceTypes})
}

// GetOffering 获取单个服务套餐
func (a *API) GetOffering(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	offering, err := a.offerings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": offering})
}

// GetOfferingForm 返回编辑表单使用的文本形式
func (a *API) GetOfferingForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	offering, err := a.offerings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": offeringFormPayload(offering)})
}

// CreateOffering 创建服务套餐
func (a *API) CreateOffering(c *gin.Context) {
	var req offeringRequest
	if !bindJSON(c, &req, "请填写完整的服务信息") {
		return
	}
	offering, err := a.offerings.Create(c.Request.Context(), req.toInput())
	respondResult(c, offering, err, "服务已创建")
}

// UpdateOffering 更新服务套餐
func (a *API) UpdateOffering(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req offeringRequest
	if !bindJSON(c, &req, "请填写完整的服务信息") {
		return
	}
	offering, err := a.offerings.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, offering, err, "服务已更新")
}

// DeleteOffering 删除服务套餐
func (a *API) DeleteOffering(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.offerings.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "服务已删除")
}
