package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

var availabilityStatuses = []string{db.AvailabilityAvailable, db.AvailabilityBusy, db.AvailabilityUnavailable}

// PersonalInfoService 维护站点主人的基础信息，只有一行记录
type PersonalInfoService struct {
	db *gorm.DB
}

// NewPersonalInfoService 构造 PersonalInfoService
func NewPersonalInfoService(gdb *gorm.DB) *PersonalInfoService {
	return &PersonalInfoService{db: gdb}
}

// PersonalInfoInput 描述可修改的个人信息字段
type PersonalInfoInput struct {
	FullName           string
	Title              string
	Bio                string
	Email              string
	Phone              string
	Location           string
	CurrentFocus       string
	AvailabilityStatus string
	ProfileImage       string
	ResumeURL          string
	GithubURL          string
	LinkedinURL        string
	TwitterURL         string
}

// Get 返回个人信息，不存在时创建默认行
func (s *PersonalInfoService) Get(ctx context.Context) (*db.PersonalInfo, error) {
	info := db.PersonalInfo{}
	if err := s.db.WithContext(ctx).
		Where(db.PersonalInfo{Model: db.Model{ID: db.PersonalInfoID}}).
		Attrs(db.PersonalInfo{AvailabilityStatus: db.AvailabilityAvailable}).
		FirstOrCreate(&info).Error; err != nil {
		return nil, fmt.Errorf("load personal info: %w", err)
	}
	return &info, nil
}

// Update 原地更新个人信息
func (s *PersonalInfoService) Update(ctx context.Context, input PersonalInfoInput) (*db.PersonalInfo, error) {
	fullName, err := requireText(input.FullName, "姓名")
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(input.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, invalidf("邮箱地址无效")
		}
	}
	status := db.AvailabilityAvailable
	if strings.TrimSpace(input.AvailabilityStatus) != "" {
		status, err = requireOneOf(strings.ToLower(input.AvailabilityStatus), "工作状态", availabilityStatuses)
		if err != nil {
			return nil, err
		}
	}
	profileImage, err := validateLink(input.ProfileImage, "头像", true)
	if err != nil {
		return nil, err
	}
	links := []struct {
		field string
		raw   string
	}{
		{field: "简历链接", raw: input.ResumeURL},
		{field: "GitHub 链接", raw: input.GithubURL},
		{field: "LinkedIn 链接", raw: input.LinkedinURL},
		{field: "Twitter 链接", raw: input.TwitterURL},
	}
	cleaned := make([]string, len(links))
	for idx, link := range links {
		value, err := validateLink(link.raw, link.field, false)
		if err != nil {
			return nil, err
		}
		cleaned[idx] = value
	}

	info, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	info.FullName = fullName
	info.Title = strings.TrimSpace(input.Title)
	info.Bio = strings.TrimSpace(input.Bio)
	info.Email = email
	info.Phone = strings.TrimSpace(input.Phone)
	info.Location = strings.TrimSpace(input.Location)
	info.CurrentFocus = strings.TrimSpace(input.CurrentFocus)
	info.AvailabilityStatus = status
	info.ProfileImage = profileImage
	info.ResumeURL = cleaned[0]
	info.GithubURL = cleaned[1]
	info.LinkedinURL = cleaned[2]
	info.TwitterURL = cleaned[3]

	if err := s.db.WithContext(ctx).Save(info).Error; err != nil {
		return nil, fmt.Errorf("update personal info: %w", err)
	}
	return info, nil
}
