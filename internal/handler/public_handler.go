package handler

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	presentLabel  = "Present"
	homePostLimit = 3
)

type educationView struct {
	db.Education
	IsCurrent bool   `json:"isCurrent"`
	EndLabel  string `json:"endLabel"`
}

type experienceView struct {
	db.Experience
	Bullets   []string `json:"bullets"`
	IsCurrent bool     `json:"isCurrent"`
	EndLabel  string   `json:"endLabel"`
}

type blogPostView struct {
	db.BlogPost
	HTML string `json:"html,omitempty"`
}

func presentEducation(items []db.Education) []educationView {
	views := make([]educationView, 0, len(items))
	for _, item := range items {
		view := educationView{Education: item, IsCurrent: item.EndDate == nil}
		if view.IsCurrent {
			view.EndLabel = presentLabel
		} else {
			view.EndLabel = item.EndDate.Format("Jan 2006")
		}
		views = append(views, view)
	}
	return views
}

func presentExperience(items []db.Experience) []experienceView {
	views := make([]experienceView, 0, len(items))
	for _, item := range items {
		view := experienceView{
			Experience: item,
			Bullets:    service.Responsibilities(item.Responsibilities),
			IsCurrent:  item.EndDate == nil,
		}
		if view.IsCurrent {
			view.EndLabel = presentLabel
		} else {
			view.EndLabel = item.EndDate.Format("Jan 2006")
		}
		views = append(views, view)
	}
	return views
}

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// PublicHome 返回首页需要的全部数据，被关闭的区块不会返回其内容
func (a *API) PublicHome(c *gin.Context) {
	ctx := c.Request.Context()

	visibility, err := a.settings.SectionVisibility(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sections, err := a.sections.List(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	info, err := a.personalInfo.Get(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	content := make(map[string]db.SectionContent, len(sections))
	for _, section := range sections {
		if visibility[section.SectionKey] {
			content[section.SectionKey] = section
		}
	}

	response := gin.H{
		"sections":     visibility,
		"order":        service.SectionIDs,
		"content":      content,
		"personalInfo": info,
	}
	if err := a.fillHomeCollections(ctx, visibility, response); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (a *API) fillHomeCollections(ctx context.Context, visibility map[string]bool, response gin.H) error {
	if visibility["education"] {
		items, err := a.education.ListVisible(ctx)
		if err != nil {
			return err
		}
		response["education"] = presentEducation(items)
	}
	if visibility["experience"] {
		items, err := a.experience.ListVisible(ctx)
		if err != nil {
			return err
		}
		response["experience"] = presentExperience(items)
	}
	if visibility["about"] {
		skills, err := a.skills.ListVisible(ctx)
		if err != nil {
			return err
		}
		response["skills"] = skills
	}
	if visibility["projects"] {
		projects, err := a.projects.ListVisible(ctx)
		if err != nil {
			return err
		}
		response["projects"] = projects
	}
	if visibility["services"] {
		offerings, err := a.offerings.ListVisible(ctx)
		if err != nil {
			return err
		}
		response["services"] = offerings
	}
	if visibility["blog"] {
		posts, err := a.posts.ListPublished(ctx)
		if err != nil {
			return err
		}
		if len(posts) > homePostLimit {
			posts = posts[:homePostLimit]
		}
		response["posts"] = posts
	}
	return nil
}

// PublicProjects 返回可见作品，featured=true 时只返回精选
func (a *API) PublicProjects(c *gin.Context) {
	var (
		projects []db.Project
		err      error
	)
	if c.Query("featured") == "true" {
		projects, err = a.projects.ListFeatured(c.Request.Context())
	} else {
		projects, err = a.projects.ListVisible(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// PublicProject 按 slug 返回可见作品
func (a *API) PublicProject(c *gin.Context) {
	project, err := a.projects.GetBySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// PublicBlogPosts 返回已发布的可见文章，最新的在前
func (a *API) PublicBlogPosts(c *gin.Context) {
	posts, err := a.posts.ListPublished(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// PublicBlogPost 返回文章及渲染后的安全 HTML
func (a *API) PublicBlogPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rendered, err := renderMarkdown(post.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "文章渲染失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": blogPostView{BlogPost: *post, HTML: rendered}})
}

// PublicServices 返回可见的服务套餐
func (a *API) PublicServices(c *gin.Context) {
	offerings, err := a.offerings.ListVisible(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// PublicSkills 返回可见技能，featured=true 时只返回精选
func (a *API) PublicSkills(c *gin.Context) {
	var (
		skills []db.Skill
		err    error
	)
	if c.Query("featured") == "true" {
		skills, err = a.skills.ListFeatured(c.Request.Context())
	} else {
		skills, err = a.skills.ListVisible(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills, "categories": db.SkillCategories})
}

// PublicExperience 返回可见工作经历，职责拆分为条目
func (a *API) PublicExperience(c *gin.Context) {
	items, err := a.experience.ListVisible(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": presentExperience(items)})
}

// PublicEducation 返回可见教育经历
func (a *API) PublicEducation(c *gin.Context) {
	items, err := a.education.ListVisible(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"education": presentEducation(items)})
}

// PublicNavigation 返回可见导航，location 为 header 或 footer 时包含 both
func (a *API) PublicNavigation(c *gin.Context) {
	var (
		items []db.NavigationItem
		err   error
	)
	if location := c.Query("location"); location != "" {
		items, err = a.navigation.ListByLocation(c.Request.Context(), location)
	} else {
		items, err = a.navigation.ListVisible(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// PublicSettings 只返回允许公开的站点设置
func (a *API) PublicSettings(c *gin.Context) {
	settings, err := a.settings.Public(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// PublicSeo 返回路由的 SEO 信息，作品与文章详情页使用自身的 meta 字段覆盖默认值
func (a *API) PublicSeo(c *gin.Context) {
	ctx := c.Request.Context()
	route := c.DefaultQuery("route", service.HomeRoute)

	defaults, err := a.seo.Resolve(ctx, route)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	meta := gin.H{
		"route":       route,
		"title":       defaults.Title,
		"description": defaults.Description,
		"keywords":    defaults.Keywords,
		"ogImage":     defaults.OgImage,
	}

	trimmed := "/" + strings.Trim(route, "/")
	if slug, ok := strings.CutPrefix(trimmed, "/projects/"); ok && slug != "" {
		if project, err := a.projects.GetBySlug(ctx, slug, false); err == nil {
			overlaySeo(meta, firstNonEmpty(project.MetaTitle, project.Title),
				firstNonEmpty(project.MetaDescription, project.ShortDescription),
				project.Keywords, project.ImageURL)
		}
	}
	if slug, ok := strings.CutPrefix(trimmed, "/blog/"); ok && slug != "" {
		if post, err := a.posts.GetBySlug(ctx, slug, true); err == nil {
			overlaySeo(meta, firstNonEmpty(post.MetaTitle, post.Title),
				firstNonEmpty(post.MetaDescription, post.Excerpt),
				post.Keywords, post.CoverImage)
		}
	}

	c.JSON(http.StatusOK, gin.H{"seo": meta})
}

func overlaySeo(meta gin.H, title, description, keywords, image string) {
	for key, value := range map[string]string{
		"title":       title,
		"description": description,
		"keywords":    keywords,
		"ogImage":     image,
	} {
		if strings.TrimSpace(value) != "" {
			meta[key] = value
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
