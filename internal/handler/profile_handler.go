package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type personalInfoRequest struct {
	FullName           string `json:"fullName"`
	Title              string `json:"title"`
	Bio                string `json:"bio"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Location           string `json:"location"`
	CurrentFocus       string `json:"currentFocus"`
	AvailabilityStatus string `json:"availabilityStatus"`
	ProfileImage       string `json:"profileImage"`
	ResumeURL          string `json:"resumeUrl"`
	GithubURL          string `json:"githubUrl"`
	LinkedinURL        string `json:"linkedinUrl"`
	TwitterURL         string `json:"twitterUrl"`
}

func (r personalInfoRequest) toInput() service.PersonalInfoInput {
	return service.PersonalInfoInput{
		FullName:           r.FullName,
		Title:              r.Title,
		Bio:                r.Bio,
		Email:              r.Email,
		Phone:              r.Phone,
		Location:           r.Location,
		CurrentFocus:       r.CurrentFocus,
		AvailabilityStatus: r.AvailabilityStatus,
		ProfileImage:       r.ProfileImage,
		ResumeURL:          r.ResumeURL,
		GithubURL:          r.GithubURL,
		LinkedinURL:        r.LinkedinURL,
		TwitterURL:         r.TwitterURL,
	}
}

// GetPersonalInfo 获取站点主人的基础信息
func (a *API) GetPersonalInfo(c *gin.Context) {
	info, err := a.personalInfo.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personalInfo": info})
}

// UpdatePersonalInfo 保存基础信息
func (a *API) UpdatePersonalInfo(c *gin.Context) {
	var req personalInfoRequest
	if !bindJSON(c, &req, "请填写完整的个人信息") {
		return
	}
	info, err := a.personalInfo.Update(c.Request.Context(), req.toInput())
	respondResult(c, info, err, "个人信息已保存")
}

type sectionContentRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	BadgeText   string `json:"badgeText"`
	BadgeColor  string `json:"badgeColor"`
}

// GetSectionContents 按展示顺序返回各区块文案
func (a *API) GetSectionContents(c *gin.Context) {
	sections, err := a.sections.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// GetSectionContent 返回单个区块文案
func (a *API) GetSectionContent(c *gin.Context) {
	section, err := a.sections.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// UpdateSectionContent 保存区块文案
func (a *API) UpdateSectionContent(c *gin.Context) {
	var req sectionContentRequest
	if !bindJSON(c, &req, "请填写区块文案") {
		return
	}
	section, err := a.sections.Update(c.Request.Context(), c.Param("key"), service.SectionContentInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		BadgeText:   req.BadgeText,
		BadgeColor:  req.BadgeColor,
	})
	respondResult(c, section, err, "区块文案已保存")
}
