package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"github.com/folio/internal/permission"
	"gorm.io/gorm"
)

// Entity names a collection whose rows carry an is_visible flag.
type Entity string

const (
	EntityProjects        Entity = "projects"
	EntityBlogPosts       Entity = "blog_posts"
	EntitySkills          Entity = "skills"
	EntityServices        Entity = "services"
	EntityEducation       Entity = "education"
	EntityExperience      Entity = "experience"
	EntityNavigationItems Entity = "navigation_items"
)

type visibilityTarget struct {
	label      string
	model      func() any
	permission permission.Permission
}

var visibilityTargets = map[Entity]visibilityTarget{
	EntityProjects:        {label: "作品", model: func() any { return &db.Project{} }, permission: permission.Projects},
	EntityBlogPosts:       {label: "文章", model: func() any { return &db.BlogPost{} }, permission: permission.Blog},
	EntitySkills:          {label: "技能", model: func() any { return &db.Skill{} }, permission: permission.Sections},
	EntityServices:        {label: "服务", model: func() any { return &db.Service{} }, permission: permission.Services},
	EntityEducation:       {label: "教育经历", model: func() any { return &db.Education{} }, permission: permission.Sections},
	EntityExperience:      {label: "工作经历", model: func() any { return &db.Experience{} }, permission: permission.Sections},
	EntityNavigationItems: {label: "导航项", model: func() any { return &db.NavigationItem{} }, permission: permission.Settings},
}

// ParseEntity maps a raw name onto a known Entity.
func ParseEntity(raw string) (Entity, error) {
	entity := Entity(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := visibilityTargets[entity]; !ok {
		return "", invalidf("未知的内容类型 %q", raw)
	}
	return entity, nil
}

// Permission returns the capability required to change rows of e.
func (e Entity) Permission() (permission.Permission, bool) {
	target, ok := visibilityTargets[e]
	return target.permission, ok
}

// VisibilityService flips the is_visible flag of any content row.
type VisibilityService struct {
	db *gorm.DB
}

// NewVisibilityService creates a VisibilityService instance.
func NewVisibilityService(gdb *gorm.DB) *VisibilityService {
	return &VisibilityService{db: gdb}
}

// Toggle stores !current as the visibility of the addressed row and returns
// it. Only the is_visible column is written; updated_at stays unchanged.
func (s *VisibilityService) Toggle(ctx context.Context, entity Entity, id uint, current bool) (bool, error) {
	target, ok := visibilityTargets[entity]
	if !ok {
		return current, invalidf("未知的内容类型 %q", entity)
	}

	next := !current
	result := s.db.WithContext(ctx).
		Model(target.model()).
		Where("id = ?", id).
		UpdateColumn("is_visible", next)
	if result.Error != nil {
		return current, fmt.Errorf("toggle %s visibility: %w", entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return current, notFoundf("%s %d 不存在", target.label, id)
	}
	return next, nil
}
