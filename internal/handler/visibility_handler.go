package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type visibilityRequest struct {
	CurrentStatus *bool `json:"currentStatus" binding:"required"`
}

// ToggleVisibility 根据客户端当前看到的状态写入相反值，权限按目标实体判断
func (a *API) ToggleVisibility(c *gin.Context) {
	entity, err := service.ParseEntity(c.Param("entity"))
	if err != nil {
		respondResult(c, nil, err, "")
		return
	}
	required, _ := entity.Permission()
	if !currentPermissions(c).Allows(required) {
		respondFailure(c, http.StatusForbidden, "没有修改该内容的权限")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req visibilityRequest
	if !bindJSON(c, &req, "请提供 currentStatus") {
		return
	}

	next, err := a.visibility.Toggle(c.Request.Context(), entity, id, *req.CurrentStatus)
	message := "已设为隐藏"
	if next {
		message = "已设为可见"
	}
	respondResult(c, gin.H{"id": id, "entity": entity, "isVisible": next}, err, message)
}
