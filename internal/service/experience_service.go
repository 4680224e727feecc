package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// ExperienceService 负责工作经历的增删改查
type ExperienceService struct {
	db *gorm.DB
}

// NewExperienceService 构造 ExperienceService
func NewExperienceService(gdb *gorm.DB) *ExperienceService {
	return &ExperienceService{db: gdb}
}

// ExperienceInput 描述创建或更新工作经历时可设置的字段
type ExperienceInput struct {
	Company          string
	Position         string
	Location         string
	StartDate        string
	EndDate          string
	Responsibilities string
	SortOrder        *int
	IsVisible        *bool
}

// List 返回全部工作经历（后台）
func (s *ExperienceService) List(ctx context.Context) ([]db.Experience, error) {
	return listRows[db.Experience](ctx, s.db, false, orderBySort)
}

// ListVisible 返回前台可见的工作经历
func (s *ExperienceService) ListVisible(ctx context.Context) ([]db.Experience, error) {
	return listRows[db.Experience](ctx, s.db, true, orderBySort)
}

// Get 根据主键获取工作经历
func (s *ExperienceService) Get(ctx context.Context, id uint) (*db.Experience, error) {
	return getRow[db.Experience](ctx, s.db, id, "工作经历")
}

// Create 新建工作经历
func (s *ExperienceService) Create(ctx context.Context, input ExperienceInput) (*db.Experience, error) {
	item := db.Experience{}
	if err := applyExperienceInput(&item, input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort[db.Experience](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	item.SortOrder = sortOrder
	item.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create experience entry: %w", err)
	}
	return &item, nil
}

// Update 更新指定工作经历
func (s *ExperienceService) Update(ctx context.Context, id uint, input ExperienceInput) (*db.Experience, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyExperienceInput(item, input); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	item.IsVisible = resolveVisible(input.IsVisible, item.IsVisible)

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update experience entry: %w", err)
	}
	return item, nil
}

// Delete 删除指定工作经历
func (s *ExperienceService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.Experience](ctx, s.db, id, "工作经历")
}

// Responsibilities splits the free text field into display bullets,
// stripping leading list markers.
func Responsibilities(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "-*•"))
		if trimmed == "" {
			continue
		}
		bullets = append(bullets, trimmed)
	}
	return bullets
}

func applyExperienceInput(item *db.Experience, input ExperienceInput) error {
	company, err := requireText(input.Company, "公司")
	if err != nil {
		return err
	}
	position, err := requireText(input.Position, "职位")
	if err != nil {
		return err
	}
	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return err
	}

	item.Company = company
	item.Position = position
	item.Location = strings.TrimSpace(input.Location)
	item.StartDate = start
	item.EndDate = end
	item.Responsibilities = strings.TrimSpace(input.Responsibilities)
	return nil
}
