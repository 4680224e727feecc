package db

import (
	"time"

	"gorm.io/datatypes"
)

// Model 与 gorm.Model 相同但不做软删除，删除后 slug 等唯一值可以被重新使用。
type Model struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Availability values for PersonalInfo.AvailabilityStatus.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// PersonalInfoID is the fixed primary key of the single personal info row.
const PersonalInfoID uint = 1

// PersonalInfo 站点主人的基础信息，仅有一行 (id=1)
type PersonalInfo struct {
	Model
	FullName           string `gorm:"size:120" json:"fullName"`
	Title              string `gorm:"size:160" json:"title"`
	Bio                string `gorm:"type:text" json:"bio"`
	Email              string `gorm:"size:255" json:"email"`
	Phone              string `gorm:"size:50" json:"phone"`
	Location           string `gorm:"size:120" json:"location"`
	CurrentFocus       string `gorm:"size:255" json:"currentFocus"`
	AvailabilityStatus string `gorm:"size:20;default:available" json:"availabilityStatus"`
	ProfileImage       string `gorm:"type:text" json:"profileImage"`
	ResumeURL          string `gorm:"size:500" json:"resumeUrl"`
	GithubURL          string `gorm:"size:500" json:"githubUrl"`
	LinkedinURL        string `gorm:"size:500" json:"linkedinUrl"`
	TwitterURL         string `gorm:"size:500" json:"twitterUrl"`
}

// TableName keeps the singular row in a plural table like the others.
func (PersonalInfo) TableName() string {
	return "personal_info"
}

// Education 教育经历，EndDate 为空表示至今
type Education struct {
	Model
	Institution  string     `gorm:"size:200;not null" json:"institution"`
	Degree       string     `gorm:"size:200;not null" json:"degree"`
	FieldOfStudy string     `gorm:"size:200" json:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Description  string     `gorm:"type:text" json:"description"`
	SortOrder    int        `gorm:"default:0;index" json:"sortOrder"`
	IsVisible    bool       `gorm:"index" json:"isVisible"`
}

// TableName returns the education table name.
func (Education) TableName() string {
	return "education"
}

// Experience 工作经历，Responsibilities 每行一条
type Experience struct {
	Model
	Company          string     `gorm:"size:200;not null" json:"company"`
	Position         string     `gorm:"size:200;not null" json:"position"`
	Location         string     `gorm:"size:200" json:"location"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	Responsibilities string     `gorm:"type:text" json:"responsibilities"`
	SortOrder        int        `gorm:"default:0;index" json:"sortOrder"`
	IsVisible        bool       `gorm:"index" json:"isVisible"`
}

// TableName returns the experience table name.
func (Experience) TableName() string {
	return "experience"
}

// Skill categories.
const (
	SkillCategoryFrontend = "Frontend"
	SkillCategoryBackend  = "Backend"
	SkillCategoryTools    = "Tools"
	SkillCategoryDevOps   = "DevOps"
	SkillCategoryDesign   = "Design"
)

// SkillCategories lists the accepted skill categories in display order.
var SkillCategories = []string{
	SkillCategoryFrontend,
	SkillCategoryBackend,
	SkillCategoryTools,
	SkillCategoryDevOps,
	SkillCategoryDesign,
}

// Skill 技能，LogoSVGOrURL 可以是 data URI 或外链
type Skill struct {
	Model
	Name             string `gorm:"size:100;not null" json:"name"`
	Category         string `gorm:"size:20;not null" json:"category"`
	LogoSVGOrURL     string `gorm:"column:logo_svg_or_url;type:text" json:"logoSvgOrUrl"`
	ProficiencyLevel int    `gorm:"default:0" json:"proficiencyLevel"`
	IsFeatured       bool   `json:"isFeatured"`
	SortOrder        int    `gorm:"default:0;index" json:"sortOrder"`
	IsVisible        bool   `gorm:"index" json:"isVisible"`
}

// Collaborator credits a person on a project.
type Collaborator struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Project 作品，slug 唯一
type Project struct {
	Model
	Title            string                            `gorm:"size:200;not null" json:"title"`
	Slug             string                            `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	ShortDescription string                            `gorm:"size:500" json:"shortDescription"`
	LongDescription  string                            `gorm:"type:text" json:"longDescription"`
	TechStack        datatypes.JSONSlice[string]       `json:"techStack"`
	LiveURL          string                            `gorm:"size:500" json:"liveUrl"`
	GithubURL        string                            `gorm:"size:500" json:"githubUrl"`
	ImageURL         string                            `gorm:"type:text" json:"imageUrl"`
	Featured         bool                              `json:"featured"`
	Category         string                            `gorm:"size:100" json:"category"`
	Gallery          datatypes.JSONSlice[string]       `json:"gallery"`
	Collaborators    datatypes.JSONSlice[Collaborator] `json:"collaborators"`
	MetaTitle        string                            `gorm:"size:200" json:"metaTitle"`
	MetaDescription  string                            `gorm:"size:500" json:"metaDescription"`
	Keywords         string                            `gorm:"size:500" json:"keywords"`
	SortOrder        int                               `gorm:"default:0;index" json:"sortOrder"`
	IsVisible        bool                              `gorm:"index" json:"isVisible"`
}

// Service types.
const (
	ServiceTypeWeb         = "web"
	ServiceTypeMobile      = "mobile"
	ServiceTypeDesign      = "design"
	ServiceTypeConsulting  = "consulting"
	ServiceTypeMaintenance = "maintenance"
)

// ServiceTypes lists the accepted service types.
var ServiceTypes = []string{
	ServiceTypeWeb,
	ServiceTypeMobile,
	ServiceTypeDesign,
	ServiceTypeConsulting,
	ServiceTypeMaintenance,
}

// Service 对外提供的服务套餐
type Service struct {
	Model
	ServiceType   string                      `gorm:"size:30;not null" json:"serviceType"`
	Title         string                      `gorm:"size:200;not null" json:"title"`
	Description   string                      `gorm:"type:text" json:"description"`
	Features      datatypes.JSONSlice[string] `json:"features"`
	PriceText     string                      `gorm:"size:100" json:"priceText"`
	IsRecommended bool                        `json:"isRecommended"`
	TechFocus     datatypes.JSONSlice[string] `json:"techFocus"`
	SortOrder     int                         `gorm:"default:0;index" json:"sortOrder"`
	IsVisible     bool                        `gorm:"index" json:"isVisible"`
}

// BlogPost 博客文章，PublishedAt 为空视为草稿
type BlogPost struct {
	Model
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Slug            string                      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Excerpt         string                      `gorm:"size:1000" json:"excerpt"`
	Content         string                      `gorm:"type:text" json:"content"`
	CoverImage      string                      `gorm:"type:text" json:"coverImage"`
	Author          string                      `gorm:"size:120" json:"author"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	ReadTime        string                      `gorm:"size:50" json:"readTime"`
	PublishedAt     *time.Time                  `gorm:"index" json:"publishedAt"`
	Gallery         datatypes.JSONSlice[string] `json:"gallery"`
	MetaTitle       string                      `gorm:"size:200" json:"metaTitle"`
	MetaDescription string                      `gorm:"size:500" json:"metaDescription"`
	Keywords        string                      `gorm:"size:500" json:"keywords"`
	SortOrder       int                         `gorm:"default:0" json:"sortOrder"`
	IsVisible       bool                        `gorm:"index" json:"isVisible"`
}

// IsDraft reports whether the post has not been published yet.
func (p BlogPost) IsDraft() bool {
	return p.PublishedAt == nil || p.PublishedAt.IsZero()
}

// Navigation locations.
const (
	NavLocationHeader = "header"
	NavLocationFooter = "footer"
	NavLocationBoth   = "both"
)

// NavigationItem 导航链接，排序在整个导航集合内统一计算
type NavigationItem struct {
	Model
	Label     string `gorm:"size:100;not null" json:"label"`
	Path      string `gorm:"size:500;not null" json:"path"`
	Location  string `gorm:"size:10;not null;default:header" json:"location"`
	ParentID  *uint  `json:"parentId"`
	SortOrder int    `gorm:"default:0;index" json:"sortOrder"`
	IsVisible bool   `gorm:"index" json:"isVisible"`
}

// SeoDefault 静态路由的默认 SEO 信息
type SeoDefault struct {
	Route       string    `gorm:"primaryKey;size:200" json:"route"`
	Title       string    `gorm:"size:200" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Keywords    string    `gorm:"size:500" json:"keywords"`
	OgImage     string    `gorm:"type:text" json:"ogImage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SectionContent 首页各区块的标题与徽标文案
type SectionContent struct {
	SectionKey  string    `gorm:"primaryKey;size:50" json:"sectionKey"`
	Title       string    `gorm:"size:200" json:"title"`
	Subtitle    string    `gorm:"size:300" json:"subtitle"`
	Description string    `gorm:"type:text" json:"description"`
	BadgeText   string    `gorm:"size:100" json:"badgeText"`
	BadgeColor  string    `gorm:"size:30" json:"badgeColor"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContactSubmission 联系表单留言，写入后不再修改
type ContactSubmission struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Subject     string    `gorm:"size:255" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IPAddress   string    `gorm:"size:64" json:"ipAddress"`
	SubmittedAt time.Time `gorm:"index;not null" json:"submittedAt"`
}
