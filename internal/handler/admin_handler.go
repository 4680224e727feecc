package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folio/internal/db"
	"github.com/folio/internal/permission"
	"github.com/folio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionAdminKey    = "admin_id"
	sessionUsernameKey = "username"

	adminContextKey       = "__admin"
	permissionsContextKey = "__permissions"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验用户名或邮箱与密码，写入会话并签发 bearer token。
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "请输入用户名和密码") {
		return
	}

	admin, err := a.admins.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondResult(c, nil, err, "")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAdminKey, admin.ID)
	session.Set(sessionUsernameKey, admin.Username)
	if err := session.Save(); err != nil {
		respondFailure(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	data := gin.H{"admin": adminPayload(admin)}
	if a.tokens.enabled() {
		token, expiresAt, err := a.tokens.issue(admin)
		if err != nil {
			respondResult(c, nil, err, "")
			return
		}
		data["token"] = token
		data["expiresAt"] = expiresAt
	}

	respondResult(c, data, nil, "登录成功")
}

// Logout 清空会话，bearer token 由客户端自行丢弃
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	respondResult(c, nil, nil, "已退出登录")
}

// Me 返回当前登录的管理员
func (a *API) Me(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "未登录")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": adminPayload(admin)})
}

// AuthRequired 接受会话或 Authorization: Bearer，并从数据库加载管理员与权限。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := a.identify(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, service.Result{Success: false, Message: "请先登录"})
			return
		}

		admin, err := a.admins.Get(c.Request.Context(), adminID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, service.Result{Success: false, Message: "账号不存在或已被删除"})
				return
			}
			c.AbortWithStatusJSON(StatusFor(err), service.Failure(err))
			return
		}

		c.Set(adminContextKey, admin)
		c.Set(permissionsContextKey, permission.FromStored(admin.Permissions))
		c.Next()
	}
}

// RequirePermission 拒绝不具备 p 权限的管理员
func RequirePermission(p permission.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentPermissions(c).Allows(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, service.Result{Success: false, Message: "没有访问该模块的权限"})
			return
		}
		c.Next()
	}
}

func (a *API) identify(c *gin.Context) (uint, bool) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		id, err := a.tokens.parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			return 0, false
		}
		return id, true
	}

	session := sessions.Default(c)
	switch value := session.Get(sessionAdminKey).(type) {
	case uint:
		return value, value > 0
	case int:
		return uint(value), value > 0
	default:
		return 0, false
	}
}

func currentAdmin(c *gin.Context) (*db.Admin, bool) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*db.Admin)
	return admin, ok && admin != nil
}

func currentPermissions(c *gin.Context) permission.Set {
	if value, exists := c.Get(permissionsContextKey); exists {
		if set, ok := value.(permission.Set); ok {
			return set
		}
	}
	return permission.Set{}
}

func adminPayload(admin *db.Admin) gin.H {
	set := permission.FromStored(admin.Permissions)
	effective := make([]string, 0, len(permission.Capabilities))
	for _, p := range set.Effective() {
		effective = append(effective, string(p))
	}
	return gin.H{
		"id":                   admin.ID,
		"username":             admin.Username,
		"email":                admin.Email,
		"permissions":          set.Strings(),
		"effectivePermissions": effective,
		"isSuper":              set.IsSuper(),
		"lastLoginAt":          admin.LastLoginAt,
		"createdAt":            admin.CreatedAt,
	}
}
