package router

import (
	"net/http"
	"strings"

	"github.com/folio/internal/config"
	"github.com/folio/internal/handler"
	"github.com/folio/internal/integration"
	"github.com/folio/internal/permission"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "folio_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(handler.RequestTimeout(cfg.RequestTimeout))

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(cfg.SiteBaseURL, "https://"),
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 上传文件
	uploadURL := cfg.UploadURLPath
	if uploadURL == "" {
		uploadURL = "/static/uploads"
	}
	if cfg.UploadDir != "" {
		uploads := r.Group(uploadURL, handler.UploadHeaders())
		uploads.Static("/", cfg.UploadDir)
	}

	api := handler.NewAPI(gdb, handler.Options{
		UploadDir:      cfg.UploadDir,
		UploadURL:      uploadURL,
		UploadMaxBytes: cfg.UploadMaxBytes,
		JWTSecret:      cfg.JWTSecret,
		JWTIssuer:      cfg.JWTIssuer,
		TokenTTL:       cfg.TokenTTL,
		Integrations:   integration.New(cfg.Integrations),
	})

	r.GET("/healthz", api.HealthCheck)

	// 前台公开接口
	public := r.Group("/api")
	{
		public.GET("/home", api.PublicHome)
		public.GET("/projects", api.PublicProjects)
		public.GET("/projects/:slug", api.PublicProject)
		public.GET("/blog", api.PublicBlogPosts)
		public.GET("/blog/:slug", api.PublicBlogPost)
		public.GET("/services", api.PublicServices)
		public.GET("/skills", api.PublicSkills)
		public.GET("/experience", api.PublicExperience)
		public.GET("/education", api.PublicEducation)
		public.GET("/navigation", api.PublicNavigation)
		public.GET("/seo", api.PublicSeo)
		public.GET("/settings", api.PublicSettings)
		public.POST("/contact", api.SubmitContact)
	}

	// 后台管理接口
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/me", api.Me)
			auth.GET("/dashboard", api.GetDashboard)
			auth.POST("/upload", api.UploadImage)
			// 实体权限在 handler 内按 :entity 判断
			auth.POST("/visibility/:entity/:id", api.ToggleVisibility)

			projects := auth.Group("/projects", handler.RequirePermission(permission.Projects))
			{
				projects.GET("", api.GetProjects)
				projects.GET("/:id", api.GetProject)
				projects.GET("/:id/form", api.GetProjectForm)
				projects.POST("", api.CreateProject)
				projects.PUT("/:id", api.UpdateProject)
				projects.DELETE("/:id", api.DeleteProject)
			}

			blog := auth.Group("/blog", handler.RequirePermission(permission.Blog))
			{
				blog.GET("", api.GetBlogPosts)
				blog.GET("/:id", api.GetBlogPost)
				blog.GET("/:id/form", api.GetBlogPostForm)
				blog.POST("", api.CreateBlogPost)
				blog.PUT("/:id", api.UpdateBlogPost)
				blog.POST("/:id/publish", api.PublishBlogPost)
				blog.DELETE("/:id", api.DeleteBlogPost)
			}

			services := auth.Group("/services", handler.RequirePermission(permission.Services))
			{
				services.GET("", api.GetOfferings)
				services.GET("/:id", api.GetOffering)
				services.GET("/:id/form", api.GetOfferingForm)
				services.POST("", api.CreateOffering)
				services.PUT("/:id", api.UpdateOffering)
				services.DELETE("/:id", api.DeleteOffering)
			}

			sections := auth.Group("", handler.RequirePermission(permission.Sections))
			{
				sections.GET("/personal-info", api.GetPersonalInfo)
				sections.PUT("/personal-info", api.UpdatePersonalInfo)

				sections.GET("/education", api.GetEducationList)
				sections.GET("/education/:id", api.GetEducation)
				sections.POST("/education", api.CreateEducation)
				sections.PUT("/education/:id", api.UpdateEducation)
				sections.DELETE("/education/:id", api.DeleteEducation)

				sections.GET("/experience", api.GetExperienceList)
				sections.GET("/experience/:id", api.GetExperience)
				sections.POST("/experience", api.CreateExperience)
				sections.PUT("/experience/:id", api.UpdateExperience)
				sections.DELETE("/experience/:id", api.DeleteExperience)

				sections.GET("/skills", api.GetSkills)
				sections.GET("/skills/:id", api.GetSkill)
				sections.POST("/skills", api.CreateSkill)
				sections.PUT("/skills/:id", api.UpdateSkill)
				sections.DELETE("/skills/:id", api.DeleteSkill)

				sections.GET("/sections", api.GetSectionContents)
				sections.GET("/sections/:key", api.GetSectionContent)
				sections.PUT("/sections/:key", api.UpdateSectionContent)

				sections.GET("/section-visibility", api.GetSectionVisibility)
				sections.PUT("/section-visibility", api.UpdateSectionVisibility)

				sections.GET("/contact-submissions", api.GetContactSubmissions)
			}

			seo := auth.Group("/seo", handler.RequirePermission(permission.SEO))
			{
				seo.GET("", api.GetSeoDefaults)
				seo.PUT("", api.UpsertSeoDefault)
				seo.DELETE("", api.DeleteSeoDefault)
			}

			settings := auth.Group("", handler.RequirePermission(permission.Settings))
			{
				settings.GET("/settings", api.GetSiteSettings)
				settings.PUT("/settings", api.UpdateSiteSettings)

				settings.GET("/navigation", api.GetNavigationItems)
				settings.GET("/navigation/:id", api.GetNavigationItem)
				settings.POST("/navigation", api.CreateNavigationItem)
				settings.PUT("/navigation/:id", api.UpdateNavigationItem)
				settings.DELETE("/navigation/:id", api.DeleteNavigationItem)
				settings.POST("/navigation/move", api.MoveNavigationItem)
				settings.PUT("/navigation/order", api.ReorderNavigation)
			}

			users := auth.Group("/admins", handler.RequirePermission(permission.Users))
			{
				users.GET("", api.GetAdmins)
				users.GET("/:id", api.GetAdmin)
				users.POST("", api.CreateAdmin)
				users.PUT("/:id", api.UpdateAdmin)
				users.DELETE("/:id", api.DeleteAdmin)
			}
		}
	}

	return r
}
