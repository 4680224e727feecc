package service

import (
	"context"
	"fmt"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// DashboardCounts 汇总后台首页展示的数量
type DashboardCounts struct {
	Projects        int64 `json:"projects"`
	VisibleProjects int64 `json:"visibleProjects"`
	BlogPosts       int64 `json:"blogPosts"`
	PublishedPosts  int64 `json:"publishedPosts"`
	Skills          int64 `json:"skills"`
	Services        int64 `json:"services"`
	Submissions     int64 `json:"submissions"`
}

// DashboardService 提供后台首页的统计数据
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 构造 DashboardService
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Counts 统计各类内容的数量
func (s *DashboardService) Counts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	queries := []struct {
		label string
		model any
		where string
		args  []any
		dest  *int64
	}{
		{label: "projects", model: &db.Project{}, dest: &counts.Projects},
		{label: "visible projects", model: &db.Project{}, where: "is_visible = ?", args: []any{true}, dest: &counts.VisibleProjects},
		{label: "blog posts", model: &db.BlogPost{}, dest: &counts.BlogPosts},
		{label: "published posts", model: &db.BlogPost{}, where: "published_at IS NOT NULL", dest: &counts.PublishedPosts},
		{label: "skills", model: &db.Skill{}, dest: &counts.Skills},
		{label: "services", model: &db.Service{}, dest: &counts.Services},
		{label: "submissions", model: &db.ContactSubmission{}, dest: &counts.Submissions},
	}

	for _, q := range queries {
		query := s.db.WithContext(ctx).Model(q.model)
		if q.where != "" {
			query = query.Where(q.where, q.args...)
		}
		if err := query.Count(q.dest).Error; err != nil {
			return DashboardCounts{}, fmt.Errorf("count %s: %w", q.label, err)
		}
	}
	return counts, nil
}
