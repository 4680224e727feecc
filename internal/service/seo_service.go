package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HomeRoute is the SEO fallback for routes without their own entry.
const HomeRoute = "/"

var defaultSeo = []db.SeoDefault{
	{Route: "/", Title: "Portfolio", Description: "Projects, writing and services."},
	{Route: "/about", Title: "About", Description: "Background, education and experience."},
	{Route: "/projects", Title: "Projects", Description: "Selected work and case studies."},
	{Route: "/blog", Title: "Blog", Description: "Notes on building software."},
	{Route: "/services", Title: "Services", Description: "Ways we can work together."},
	{Route: "/contact", Title: "Contact", Description: "Get in touch."},
}

// SeoService 管理静态路由的默认 SEO 信息
type SeoService struct {
	db *gorm.DB
}

// SeoInput 描述 SEO 可编辑字段
type SeoInput struct {
	Title       string
	Description string
	Keywords    string
	OgImage     string
}

// NewSeoService 构造 SeoService
func NewSeoService(gdb *gorm.DB) *SeoService {
	return &SeoService{db: gdb}
}

// List 返回全部路由的 SEO 信息
func (s *SeoService) List(ctx context.Context) ([]db.SeoDefault, error) {
	var rows []db.SeoDefault
	if err := s.db.WithContext(ctx).Order("route asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list seo defaults: %w", err)
	}
	return rows, nil
}

// Get 返回指定路由的 SEO 信息
func (s *SeoService) Get(ctx context.Context, route string) (*db.SeoDefault, error) {
	normalized, err := normalizeRoute(route)
	if err != nil {
		return nil, err
	}

	var row db.SeoDefault
	if err := s.db.WithContext(ctx).Where("route = ?", normalized).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("%s 没有 SEO 配置", normalized)
		}
		return nil, fmt.Errorf("get seo default: %w", err)
	}
	return &row, nil
}

// Resolve 返回路由的 SEO 信息，没有单独配置时使用首页的
func (s *SeoService) Resolve(ctx context.Context, route string) (*db.SeoDefault, error) {
	row, err := s.Get(ctx, route)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return row, err
	}
	return s.Get(ctx, HomeRoute)
}

// Upsert 创建或覆盖路由的 SEO 信息
func (s *SeoService) Upsert(ctx context.Context, route string, input SeoInput) (*db.SeoDefault, error) {
	normalized, err := normalizeRoute(route)
	if err != nil {
		return nil, err
	}
	title, err := requireText(input.Title, "标题")
	if err != nil {
		return nil, err
	}
	ogImage, err := validateLink(input.OgImage, "分享图", true)
	if err != nil {
		return nil, err
	}

	row := db.SeoDefault{
		Route:       normalized,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Keywords:    strings.TrimSpace(input.Keywords),
		OgImage:     ogImage,
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("save seo default: %w", err)
	}
	return &row, nil
}

// Delete 删除路由的 SEO 信息
func (s *SeoService) Delete(ctx context.Context, route string) error {
	normalized, err := normalizeRoute(route)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Where("route = ?", normalized).Delete(&db.SeoDefault{})
	if result.Error != nil {
		return fmt.Errorf("delete seo default: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("%s 没有 SEO 配置", normalized)
	}
	return nil
}

// SeedDefaults 为核心路由写入默认 SEO 信息，已有的不覆盖
func (s *SeoService) SeedDefaults(ctx context.Context) error {
	rows := make([]db.SeoDefault, len(defaultSeo))
	copy(rows, defaultSeo)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "route"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("seed seo defaults: %w", err)
	}
	return nil
}

// normalizeRoute 统一路由格式：以 / 开头，去掉结尾的 /
func normalizeRoute(route string) (string, error) {
	trimmed := strings.TrimSpace(route)
	if trimmed == "" {
		return "", invalidf("路由不能为空")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
		if trimmed == "" {
			trimmed = HomeRoute
		}
	}
	if strings.ContainsAny(trimmed, " ?#") {
		return "", invalidf("路由 %q 必须是普通路径", route)
	}
	return strings.ToLower(trimmed), nil
}
