package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type educationRequest struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
	SortOrder    *int   `json:"sortOrder"`
	IsVisible    *bool  `json:"isVisible"`
}

func (r educationRequest) toInput() service.EducationInput {
	return service.EducationInput{
		Institution:  r.Institution,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Description:  r.Description,
		SortOrder:    r.SortOrder,
		IsVisible:    r.IsVisible,
	}
}

// GetEducationList 获取全部教育经历
func (a *API) GetEducationList(c *gin.Context) {
	items, err := a.education.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"education": items})
}

// GetEducation 获取单条教育经历
func (a *API) GetEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.education.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"education": item})
}

// CreateEducation 新增教育经历
func (a *API) CreateEducation(c *gin.Context) {
	var req educationRequest
	if !bindJSON(c, &req, "请填写完整的教育经历") {
		return
	}
	item, err := a.education.Create(c.Request.Context(), req.toInput())
	respondResult(c, item, err, "教育经历已创建")
}

// UpdateEducation 更新教育经历
func (a *API) UpdateEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req educationRequest
	if !bindJSON(c, &req, "请填写完整的教育经历") {
		return
	}
	item, err := a.education.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, item, err, "教育经历已更新")
}

// DeleteEducation 删除教育经历
func (a *API) DeleteEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.education.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "教育经历已删除")
}

type experienceRequest struct {
	Company          string `json:"company"`
	Position         string `json:"position"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Responsibilities string `json:"responsibilities"`
	SortOrder        *int   `json:"sortOrder"`
	IsVisible        *bool  `json:"isVisible"`
}

func (r experienceRequest) toInput() service.ExperienceInput {
	return service.ExperienceInput{
		Company:          r.Company,
		Position:         r.Position,
		Location:         r.Location,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Responsibilities: r.Responsibilities,
		SortOrder:        r.SortOrder,
		IsVisible:        r.IsVisible,
	}
}

// GetExperienceList 获取全部工作经历
func (a *API) GetExperienceList(c *gin.Context) {
	items, err := a.experience.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": items})
}

// GetExperience 获取单条工作经历
func (a *API) GetExperience(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.experience.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": item})
}

// CreateExperience 新增工作经历
func (a *API) CreateExperience(c *gin.Context) {
	var req experienceRequest
	if !bindJSON(c, &req, "请填写完整的工作经历") {
		return
	}
	item, err := a.experience.Create(c.Request.Context(), req.toInput())
	respondResult(c, item, err, "工作经历已创建")
}

// UpdateExperience 更新工作经历
func (a *API) UpdateExperience(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req experienceRequest
	if !bindJSON(c, &req, "请填写完整的工作经历") {
		return
	}
	item, err := a.experience.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, item, err, "工作经历已更新")
}

// DeleteExperience 删除工作经历
func (a *API) DeleteExperience(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.experience.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "工作经历已删除")
}

type skillRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	LogoSVGOrURL     string `json:"logoSvgOrUrl"`
	ProficiencyLevel int    `json:"proficiencyLevel"`
	IsFeatured       bool   `json:"isFeatured"`
	SortOrder        *int   `json:"sortOrder"`
	IsVisible        *bool  `json:"isVisible"`
}

func (r skillRequest) toInput() service.SkillInput {
	return service.SkillInput{
		Name:             r.Name,
		Category:         r.Category,
		LogoSVGOrURL:     r.LogoSVGOrURL,
		ProficiencyLevel: r.ProficiencyLevel,
		IsFeatured:       r.IsFeatured,
		SortOrder:        r.SortOrder,
		IsVisible:        r.IsVisible,
	}
}

// GetSkills 获取全部技能
func (a *API) GetSkills(c *gin.Context) {
	skills, err := a.skills.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// GetSkill 获取单个技能
func (a *API) GetSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	skill, err := a.skills.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": skill})
}

// CreateSkill 新增技能
func (a *API) CreateSkill(c *gin.Context) {
	var req skillRequest
	if !bindJSON(c, &req, "请填写完整的技能信息") {
		return
	}
	skill, err := a.skills.Create(c.Request.Context(), req.toInput())
	respondResult(c, skill, err, "技能已创建")
}

// UpdateSkill 更新技能
func (a *API) UpdateSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req skillRequest
	if !bindJSON(c, &req, "请填写完整的技能信息") {
		return
	}
	skill, err := a.skills.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, skill, err, "技能已更新")
}

// DeleteSkill 删除技能
func (a *API) DeleteSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.skills.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "技能已删除")
}
