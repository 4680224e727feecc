package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectService 负责作品集项目的读写
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService 构造 ProjectService
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// ProjectInput 描述项目的可编辑字段。Slug 为空时新建会从标题生成，编辑时保留原值
type ProjectInput struct {
	Title            string
	Slug             string
	ShortDescription string
	LongDescription  string
	TechStack        []string
	LiveURL          string
	GithubURL        string
	ImageURL         string
	Featured         bool
	Category         string
	Gallery          []string
	Collaborators    []db.Collaborator
	MetaTitle        string
	MetaDescription  string
	Keywords         string
	SortOrder        *int
	IsVisible        *bool
}

// List 返回全部项目
func (s *ProjectService) List(ctx context.Context) ([]db.Project, error) {
	return listRows[db.Project](ctx, s.db, false, orderBySort)
}

// ListVisible 返回公开的项目
func (s *ProjectService) ListVisible(ctx context.Context) ([]db.Project, error) {
	return listRows[db.Project](ctx, s.db, true, orderBySort)
}

// ListFeatured 返回首页展示的精选项目
func (s *ProjectService) ListFeatured(ctx context.Context) ([]db.Project, error) {
	var projects []db.Project
	if err := s.db.WithContext(ctx).
		Where("is_visible = ? AND featured = ?", true, true).
		Order(orderBySort).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get 根据主键获取项目
func (s *ProjectService) Get(ctx context.Context, id uint) (*db.Project, error) {
	return getRow[db.Project](ctx, s.db, id, "作品")
}

// GetBySlug 根据 slug 获取项目，includeHidden 为 false 时隐藏项目视为不存在
func (s *ProjectService) GetBySlug(ctx context.Context, slug string, includeHidden bool) (*db.Project, error) {
	query := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug))
	if !includeHidden {
		query = query.Where("is_visible = ?", true)
	}

	var project db.Project
	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("作品 %q 不存在", slug)
		}
		return nil, fmt.Errorf("get project by slug: %w", err)
	}
	return &project, nil
}

// Create 新建项目，slug 重复时返回冲突且不写入
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*db.Project, error) {
	project := db.Project{}
	if err := applyProjectInput(&project, input); err != nil {
		return nil, err
	}

	slug, err := resolveNewSlug(input.Slug, project.Title)
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.db, &db.Project{}, slug, 0, "作品"); err != nil {
		return nil, err
	}
	project.Slug = slug

	sortOrder, err := resolveSort[db.Project](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	project.SortOrder = sortOrder
	project.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, slugWriteError(err, slug, "作品")
	}
	return &project, nil
}

// Update 更新项目内容，slug 为空时保留原值
func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectInput) (*db.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProjectInput(project, input); err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != project.Slug {
		if !ValidSlug(slug) {
			return nil, invalidf("slug %q 只能包含小写字母、数字和单个连字符", slug)
		}
		if err := ensureSlugFree(ctx, s.db, &db.Project{}, slug, id, "作品"); err != nil {
			return nil, err
		}
		project.Slug = slug
	}
	if input.SortOrder != nil {
		project.SortOrder = *input.SortOrder
	}
	project.IsVisible = resolveVisible(input.IsVisible, project.IsVisible)

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, slugWriteError(err, project.Slug, "作品")
	}
	return project, nil
}

// Delete 删除项目
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.Project](ctx, s.db, id, "作品")
}

func applyProjectInput(project *db.Project, input ProjectInput) error {
	title, err := requireText(input.Title, "标题")
	if err != nil {
		return err
	}
	liveURL, err := validateLink(input.LiveURL, "演示链接", false)
	if err != nil {
		return err
	}
	githubURL, err := validateLink(input.GithubURL, "GitHub 链接", false)
	if err != nil {
		return err
	}
	imageURL, err := validateLink(input.ImageURL, "封面图", true)
	if err != nil {
		return err
	}
	gallery, err := validateLinks(input.Gallery, "图集图片")
	if err != nil {
		return err
	}
	collaborators, err := cleanCollaborators(input.Collaborators)
	if err != nil {
		return err
	}

	project.Title = title
	project.ShortDescription = strings.TrimSpace(input.ShortDescription)
	project.LongDescription = strings.TrimSpace(input.LongDescription)
	project.TechStack = datatypes.JSONSlice[string](cleanList(input.TechStack))
	project.LiveURL = liveURL
	project.GithubURL = githubURL
	project.ImageURL = imageURL
	project.Featured = input.Featured
	project.Category = strings.TrimSpace(input.Category)
	project.Gallery = datatypes.JSONSlice[string](gallery)
	project.Collaborators = datatypes.JSONSlice[db.Collaborator](collaborators)
	project.MetaTitle = strings.TrimSpace(input.MetaTitle)
	project.MetaDescription = strings.TrimSpace(input.MetaDescription)
	project.Keywords = strings.TrimSpace(input.Keywords)
	return nil
}

func cleanCollaborators(items []db.Collaborator) ([]db.Collaborator, error) {
	out := make([]db.Collaborator, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		link, err := validateLink(item.URL, "合作者链接", false)
		if err != nil {
			return nil, err
		}
		out = append(out, db.Collaborator{Name: name, URL: link})
	}
	return out, nil
}
