package service

import (
	"context"
	"fmt"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// SkillService wraps skill related operations.
type SkillService struct {
	db *gorm.DB
}

// SkillInput represents fields accepted when creating or updating a skill.
type SkillInput struct {
	Name             string
	Category         string
	LogoSVGOrURL     string
	ProficiencyLevel int
	IsFeatured       bool
	SortOrder        *int
	IsVisible        *bool
}

// NewSkillService creates a SkillService instance.
func NewSkillService(gdb *gorm.DB) *SkillService {
	return &SkillService{db: gdb}
}

// List returns every skill in display order.
func (s *SkillService) List(ctx context.Context) ([]db.Skill, error) {
	return listRows[db.Skill](ctx, s.db, false, orderBySort)
}

// ListVisible returns skills shown on the public site.
func (s *SkillService) ListVisible(ctx context.Context) ([]db.Skill, error) {
	return listRows[db.Skill](ctx, s.db, true, orderBySort)
}

// ListFeatured returns the visible subset used by the ticker.
func (s *SkillService) ListFeatured(ctx context.Context) ([]db.Skill, error) {
	var skills []db.Skill
	if err := s.db.WithContext(ctx).
		Where("is_visible = ? AND is_featured = ?", true, true).
		Order(orderBySort).
		Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// Get fetches a skill by id.
func (s *SkillService) Get(ctx context.Context, id uint) (*db.Skill, error) {
	return getRow[db.Skill](ctx, s.db, id, "技能")
}

// Create inserts a new skill.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*db.Skill, error) {
	skill := db.Skill{}
	if err := applySkillInput(&skill, input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort[db.Skill](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	skill.SortOrder = sortOrder
	skill.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return &skill, nil
}

// Update modifies an existing skill.
func (s *SkillService) Update(ctx context.Context, id uint, input SkillInput) (*db.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySkillInput(skill, input); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		skill.SortOrder = *input.SortOrder
	}
	skill.IsVisible = resolveVisible(input.IsVisible, skill.IsVisible)

	if err := s.db.WithContext(ctx).Save(skill).Error; err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return skill, nil
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.Skill](ctx, s.db, id, "技能")
}

func applySkillInput(skill *db.Skill, input SkillInput) error {
	name, err := requireText(input.Name, "名称")
	if err != nil {
		return err
	}
	category, err := requireOneOf(input.Category, "分类", db.SkillCategories)
	if err != nil {
		return err
	}
	if input.ProficiencyLevel < 0 || input.ProficiencyLevel > 100 {
		return invalidf("熟练度必须在 0 到 100 之间")
	}
	logo, err := validateLink(input.LogoSVGOrURL, "图标", true)
	if err != nil {
		return err
	}

	skill.Name = name
	skill.Category = category
	skill.LogoSVGOrURL = logo
	skill.ProficiencyLevel = input.ProficiencyLevel
	skill.IsFeatured = input.IsFeatured
	return nil
}
