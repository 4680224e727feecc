package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 已发布的文章按发布时间倒序，草稿排在最后
const orderByPublished = "published_at IS NULL, published_at desc, id desc"

const wordsPerMinute = 200

// BlogPostService 负责博客文章的读写
type BlogPostService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBlogPostService 构造 BlogPostService
func NewBlogPostService(gdb *gorm.DB) *BlogPostService {
	return &BlogPostService{db: gdb, now: time.Now}
}

// BlogPostInput 描述文章的可编辑字段，PublishedAt 为空表示草稿
type BlogPostInput struct {
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	CoverImage      string
	Author          string
	Tags            []string
	ReadTime        string
	PublishedAt     string
	Gallery         []string
	MetaTitle       string
	MetaDescription string
	Keywords        string
	SortOrder       *int
	IsVisible       *bool
}

// List 返回全部文章（包含草稿）
func (s *BlogPostService) List(ctx context.Context) ([]db.BlogPost, error) {
	return listRows[db.BlogPost](ctx, s.db, false, orderByPublished)
}

// ListVisible 返回可见文章，包括尚未发布的
func (s *BlogPostService) ListVisible(ctx context.Context) ([]db.BlogPost, error) {
	return listRows[db.BlogPost](ctx, s.db, true, orderByPublished)
}

// ListPublished 返回前台展示的文章：可见且已发布
func (s *BlogPostService) ListPublished(ctx context.Context) ([]db.BlogPost, error) {
	var posts []db.BlogPost
	if err := s.db.WithContext(ctx).
		Where("is_visible = ? AND published_at IS NOT NULL", true).
		Order(orderByPublished).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get 根据主键获取文章
func (s *BlogPostService) Get(ctx context.Context, id uint) (*db.BlogPost, error) {
	return getRow[db.BlogPost](ctx, s.db, id, "文章")
}

// GetBySlug 根据 slug 获取文章，publishedOnly 时草稿和隐藏文章视为不存在
func (s *BlogPostService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*db.BlogPost, error) {
	query := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug))
	if publishedOnly {
		query = query.Where("is_visible = ? AND published_at IS NOT NULL", true)
	}

	var post db.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("文章 %q 不存在", slug)
		}
		return nil, fmt.Errorf("get blog post by slug: %w", err)
	}
	return &post, nil
}

// Create 新建文章
func (s *BlogPostService) Create(ctx context.Context, input BlogPostInput) (*db.BlogPost, error) {
	post := db.BlogPost{}
	if err := applyBlogPostInput(&post, input); err != nil {
		return nil, err
	}

	slug, err := resolveNewSlug(input.Slug, post.Title)
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.db, &db.BlogPost{}, slug, 0, "文章"); err != nil {
		return nil, err
	}
	post.Slug = slug

	sortOrder, err := resolveSort[db.BlogPost](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	post.SortOrder = sortOrder
	post.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, slugWriteError(err, slug, "文章")
	}
	return &post, nil
}

// Update 更新文章，slug 为空时保留原值
func (s *BlogPostService) Update(ctx context.Context, id uint, input BlogPostInput) (*db.BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBlogPostInput(post, input); err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != post.Slug {
		if !ValidSlug(slug) {
			return nil, invalidf("slug %q 只能包含小写字母、数字和单个连字符", slug)
		}
		if err := ensureSlugFree(ctx, s.db, &db.BlogPost{}, slug, id, "文章"); err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if input.SortOrder != nil {
		post.SortOrder = *input.SortOrder
	}
	post.IsVisible = resolveVisible(input.IsVisible, post.IsVisible)

	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, slugWriteError(err, post.Slug, "文章")
	}
	return post, nil
}

// SetPublished 发布或撤回文章。已发布的文章再次发布时保留原发布时间
func (s *BlogPostService) SetPublished(ctx context.Context, id uint, published bool) (*db.BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	switch {
	case !published:
		publishedAt = nil
	case post.IsDraft():
		now := s.now().UTC()
		publishedAt = &now
	default:
		publishedAt = post.PublishedAt
	}

	if err := s.db.WithContext(ctx).Model(post).Update("published_at", publishedAt).Error; err != nil {
		return nil, fmt.Errorf("set blog post published: %w", err)
	}
	post.PublishedAt = publishedAt
	return post, nil
}

// Delete 删除文章
func (s *BlogPostService) Delete(ctx context.Context, id uint) error {
	return deleteRow[db.BlogPost](ctx, s.db, id, "文章")
}

// EstimateReadTime returns a "N min read" label for markdown content.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func applyBlogPostInput(post *db.BlogPost, input BlogPostInput) error {
	title, err := requireText(input.Title, "标题")
	if err != nil {
		return err
	}
	cover, err := validateLink(input.CoverImage, "封面图", true)
	if err != nil {
		return err
	}
	gallery, err := validateLinks(input.Gallery, "图集图片")
	if err != nil {
		return err
	}
	publishedAt, err := parseDate(input.PublishedAt, "发布时间")
	if err != nil {
		return err
	}

	content := strings.TrimSpace(input.Content)
	readTime := strings.TrimSpace(input.ReadTime)
	if readTime == "" {
		readTime = EstimateReadTime(content)
	}

	post.Title = title
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = content
	post.CoverImage = cover
	post.Author = strings.TrimSpace(input.Author)
	post.Tags = datatypes.JSONSlice[string](cleanList(input.Tags))
	post.ReadTime = readTime
	post.PublishedAt = publishedAt
	post.Gallery = datatypes.JSONSlice[string](gallery)
	post.MetaTitle = strings.TrimSpace(input.MetaTitle)
	post.MetaDescription = strings.TrimSpace(input.MetaDescription)
	post.Keywords = strings.TrimSpace(input.Keywords)
	return nil
}
