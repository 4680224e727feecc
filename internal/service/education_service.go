package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// EducationService 负责教育经历的增删改查
type EducationService struct {
	db *gorm.DB
}

// NewEducationService 构造 EducationService
func NewEducationService(gdb *gorm.DB) *EducationService {
	return &EducationService{db: gdb}
}

// EducationInput 描述创建或更新教育经历时可设置的字段
// SortOrder/IsVisible 使用指针判断是否显式传入
type EducationInput struct {
	Institution  string
	Degree       string
	FieldOfStudy string
	StartDate    string
	EndDate      string
	Description  string
	SortOrder    *int
	IsVisible    *bool
}

// List 返回全部教育经历（后台）
func (s *EducationService) List(ctx context.Context) ([]db.Education, error) {
	return listRows[db.Education](ctx, s.db, false, orderBySort)
}

// ListVisible 返回前台可见的教育经历
func (s *EducationService) ListVisible(ctx context.Context) ([]db.Education, error) {
	return listRows[db.Education](ctx, s.db, true, orderBySort)
}

// Get 根据主键获取教育经历
func (s *EducationService) Get(ctx context.Context, id uint) (*db.Education, error) {
	return getRow[db.Education](ctx, s.db, id, "教育经历")
}

// Create 新建教育经历，未指定排序时追加到末尾
func (s *EducationService) Create(ctx context.Context, input EducationInput) (*db.Education, error) {
	item := db.Education{}
	if err := applyEducationInput(&item, input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort[db.Education](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	item.SortOrder = sortOrder
	item.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create education entry: %w", err)
	}
	return &item, nil
}

// Update 更新指定教育经历
func (s *EducationService) Update(ctx context.Context, id uint, input EducationInput) (*db.Education, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEducationInput(item, input); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	item.IsVisible = resolveVisible(input.IsVisible, item.IsVisible)

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update education entry: %w", err)
	}
	return item, nil
}

// Delete 删除指定教育经历
func (s *EducationService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.Education](ctx, s.db, id, "教育经历")
}

func applyEducationInput(item *db.Education, input EducationInput) error {
	institution, err := requireText(input.Institution, "学校")
	if err != nil {
		return err
	}
	degree, err := requireText(input.Degree, "学位")
	if err != nil {
		return err
	}
	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return err
	}

	item.Institution = institution
	item.Degree = degree
	item.FieldOfStudy = strings.TrimSpace(input.FieldOfStudy)
	item.StartDate = start
	item.EndDate = end
	item.Description = strings.TrimSpace(input.Description)
	return nil
}
