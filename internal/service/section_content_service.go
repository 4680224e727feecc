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

var defaultSectionTitles = map[string]string{
	"hero":       "Hi, I'm a developer",
	"about":      "About Me",
	"education":  "Education",
	"experience": "Experience",
	"projects":   "Featured Projects",
	"services":   "Services",
	"blog":       "Latest Posts",
	"contact":    "Get In Touch",
}

// SectionContentService provides the headings shown above homepage sections.
type SectionContentService struct {
	db *gorm.DB
}

// SectionContentInput represents the editable copy of a section.
type SectionContentInput struct {
	Title       string
	Subtitle    string
	Description string
	BadgeText   string
	BadgeColor  string
}

// NewSectionContentService returns a new SectionContentService instance.
func NewSectionContentService(gdb *gorm.DB) *SectionContentService {
	return &SectionContentService{db: gdb}
}

// List returns the content of every section in display order.
func (s *SectionContentService) List(ctx context.Context) ([]db.SectionContent, error) {
	var rows []db.SectionContent
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list section content: %w", err)
	}

	byKey := make(map[string]db.SectionContent, len(rows))
	for _, row := range rows {
		byKey[row.SectionKey] = row
	}
	ordered := make([]db.SectionContent, 0, len(rows))
	for _, id := range SectionIDs {
		if row, ok := byKey[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// Get fetches the content for a single section.
func (s *SectionContentService) Get(ctx context.Context, key string) (*db.SectionContent, error) {
	sectionKey, err := requireOneOf(strings.ToLower(key), "栏目", SectionIDs)
	if err != nil {
		return nil, err
	}

	var row db.SectionContent
	if err := s.db.WithContext(ctx).Where("section_key = ?", sectionKey).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("栏目 %q 尚无内容", sectionKey)
		}
		return nil, fmt.Errorf("get section content: %w", err)
	}
	return &row, nil
}

// Update creates or replaces the content of a section.
func (s *SectionContentService) Update(ctx context.Context, key string, input SectionContentInput) (*db.SectionContent, error) {
	sectionKey, err := requireOneOf(strings.ToLower(key), "栏目", SectionIDs)
	if err != nil {
		return nil, err
	}
	title, err := requireText(input.Title, "标题")
	if err != nil {
		return nil, err
	}
	badgeColor := strings.TrimSpace(input.BadgeColor)
	if badgeColor != "" && !colorPattern.MatchString(badgeColor) {
		return nil, invalidf("徽标颜色必须是十六进制颜色，例如 #22c55e")
	}

	row := db.SectionContent{
		SectionKey:  sectionKey,
		Title:       title,
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Description: strings.TrimSpace(input.Description),
		BadgeText:   strings.TrimSpace(input.BadgeText),
		BadgeColor:  strings.ToLower(badgeColor),
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("update section content: %w", err)
	}
	return &row, nil
}

// SeedDefaults inserts default headings for sections that have none.
func (s *SectionContentService) SeedDefaults(ctx context.Context) error {
	rows := make([]db.SectionContent, 0, len(SectionIDs))
	for _, id := range SectionIDs {
		rows = append(rows, db.SectionContent{SectionKey: id, Title: defaultSectionTitles[id]})
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "section_key"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("seed section content: %w", err)
	}
	return nil
}
