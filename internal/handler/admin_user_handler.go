package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type adminRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Permissions []string `json:"permissions"`
}

func (r adminRequest) toInput() service.AdminInput {
	return service.AdminInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		Permissions: r.Permissions,
	}
}

// GetAdmins 获取管理员列表
func (a *API) GetAdmins(c *gin.Context) {
	admins, err := a.admins.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]gin.H, 0, len(admins))
	for i := range admins {
		response = append(response, adminPayload(&admins[i]))
	}
	c.JSON(http.StatusOK, gin.H{"admins": response})
}

// GetAdmin 获取单个管理员
func (a *API) GetAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	admin, err := a.admins.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": adminPayload(admin)})
}

// CreateAdmin 创建管理员
func (a *API) CreateAdmin(c *gin.Context) {
	var req adminRequest
	if !bindJSON(c, &req, "请填写完整的管理员信息") {
		return
	}
	admin, err := a.admins.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondResult(c, nil, err, "")
		return
	}
	respondResult(c, adminPayload(admin), nil, "管理员已创建")
}

// UpdateAdmin 更新管理员，密码留空则保持不变
func (a *API) UpdateAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req adminRequest
	if !bindJSON(c, &req, "请填写完整的管理员信息") {
		return
	}
	admin, err := a.admins.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondResult(c, nil, err, "")
		return
	}
	respondResult(c, adminPayload(admin), nil, "管理员已更新")
}

// DeleteAdmin 删除管理员，不能删除自己
func (a *API) DeleteAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if current, exists := currentAdmin(c); exists && current.ID == id {
		respondFailure(c, http.StatusBadRequest, "不能删除当前登录的账号")
		return
	}
	err := a.admins.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "管理员已删除")
}
