package handler

import (
	"net/http"

	"github.com/folio/internal/db"
	"github.com/folio/internal/form"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

// projectRequest 的列表字段同时接受数组与表单里的原始文本
type projectRequest struct {
	Title            string                `json:"title"`
	Slug             string                `json:"slug"`
	ShortDescription string                `json:"shortDescription"`
	LongDescription  string                `json:"longDescription"`
	TechStack        form.CommaList        `json:"techStack"`
	LiveURL          string                `json:"liveUrl"`
	GithubURL        string                `json:"githubUrl"`
	ImageURL         string                `json:"imageUrl"`
	Featured         bool                  `json:"featured"`
	Category         string                `json:"category"`
	Gallery          form.LineList         `json:"gallery"`
	Collaborators    form.CollaboratorList `json:"collaborators"`
	MetaTitle        string                `json:"metaTitle"`
	MetaDescription  string                `json:"metaDescription"`
	Keywords         string                `json:"keywords"`
	SortOrder        *int                  `json:"sortOrder"`
	IsVisible        *bool                 `json:"isVisible"`
}

func (r projectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:            r.Title,
		Slug:             r.Slug,
		ShortDescription: r.ShortDescription,
		LongDescription:  r.LongDescription,
		TechStack:        r.TechStack,
		LiveURL:          r.LiveURL,
		GithubURL:        r.GithubURL,
		ImageURL:         r.ImageURL,
		Featured:         r.Featured,
		Category:         r.Category,
		Gallery:          r.Gallery,
		Collaborators:    r.Collaborators,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
		Keywords:         form.NormalizeCSV(r.Keywords),
		SortOrder:        r.SortOrder,
		IsVisible:        r.IsVisible,
	}
}

// projectFormPayload 把列表字段还原成编辑框中的文本
func projectFormPayload(project *db.Project) gin.H {
	return gin.H{
		"id":               project.ID,
		"title":            project.Title,
		"slug":             project.Slug,
		"shortDescription": project.ShortDescription,
		"longDescription":  project.LongDescription,
		"techStack":        form.Join(project.TechStack, form.Comma),
		"liveUrl":          project.LiveURL,
		"githubUrl":        project.GithubURL,
		"imageUrl":         project.ImageURL,
		"featured":         project.Featured,
		"category":         project.Category,
		"gallery":          form.Join(project.Gallery, form.Newline),
		"collaborators":    form.JoinCollaborators(project.Collaborators),
		"metaTitle":        project.MetaTitle,
		"metaDescription":  project.MetaDescription,
		"keywords":         project.Keywords,
		"sortOrder":        project.SortOrder,
		"isVisible":        project.IsVisible,
	}
}

// GetProjects 获取全部作品（含隐藏）
func (a *API) GetProjects(c *gin.Context) {
	projects, err := a.projects.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject 获取单个作品
func (a *API) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := a.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// GetProjectForm 返回编辑表单使用的文本形式
func (a *API) GetProjectForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := a.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projectFormPayload(project)})
}

// CreateProject 创建作品，slug 为空时由标题生成
func (a *API) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req, "请填写完整的作品信息") {
		return
	}
	project, err := a.projects.Create(c.Request.Context(), req.toInput())
	respondResult(c, project, err, "作品已创建")
}

// UpdateProject 更新作品
func (a *API) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req projectRequest
	if !bindJSON(c, &req, "请填写完整的作品信息") {
		return
	}
	project, err := a.projects.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, project, err, "作品已更新")
}

// DeleteProject 删除作品
func (a *API) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.projects.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "作品已删除")
}
