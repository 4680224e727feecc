package handler

import (
	"time"

	"github.com/folio/internal/integration"
	"github.com/folio/internal/service"
	"gorm.io/gorm"
)

// Options 描述构造 API 时需要的外部配置。
type Options struct {
	UploadDir      string
	UploadURL      string
	UploadMaxBytes int64
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	Integrations   *integration.Suite
	Notifier       service.Notifier
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	personalInfo *service.PersonalInfoService
	education    *service.EducationService
	experience   *service.ExperienceService
	skills       *service.SkillService
	projects     *service.ProjectService
	offerings    *service.OfferingService
	posts        *service.BlogPostService
	navigation   *service.NavigationService
	visibility   *service.VisibilityService
	settings     *service.SiteSettingService
	sections     *service.SectionContentService
	seo          *service.SeoService
	contact      *service.ContactService
	admins       *service.AdminService
	dashboard    *service.DashboardService
	tokens       tokenIssuer
	integrations *integration.Suite

	uploadDir      string
	uploadURL      string
	uploadMaxBytes int64
}

const defaultUploadMaxBytes = 5 << 20

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	maxBytes := opts.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultUploadMaxBytes
	}
	suite := opts.Integrations
	if suite == nil {
		suite = &integration.Suite{}
	}

	return &API{
		db:           gdb,
		personalInfo: service.NewPersonalInfoService(gdb),
		education:    service.NewEducationService(gdb),
		experience:   service.NewExperienceService(gdb),
		skills:       service.NewSkillService(gdb),
		projects:     service.NewProjectService(gdb),
		offerings:    service.NewOfferingService(gdb),
		posts:        service.NewBlogPostService(gdb),
		navigation:   service.NewNavigationService(gdb),
		visibility:   service.NewVisibilityService(gdb),
		settings:     service.NewSiteSettingService(gdb),
		sections:     service.NewSectionContentService(gdb),
		seo:          service.NewSeoService(gdb),
		contact:      service.NewContactService(gdb, opts.Notifier),
		admins:       service.NewAdminService(gdb),
		dashboard:    service.NewDashboardService(gdb),
		tokens:       newTokenIssuer(opts.JWTSecret, opts.JWTIssuer, opts.TokenTTL),
		integrations: suite,

		uploadDir:      opts.UploadDir,
		uploadURL:      opts.UploadURL,
		uploadMaxBytes: maxBytes,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
