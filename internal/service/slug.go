package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify derives a URL slug from a title: lowercase, whitespace becomes a
// hyphen, anything outside [a-z0-9-] is dropped and hyphens are collapsed
// and trimmed.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// ValidSlug reports whether slug is already in canonical form.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// resolveNewSlug picks the slug for a new row: explicit slugs must be
// canonical, missing ones are derived from the title.
func resolveNewSlug(explicit, title string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = Slugify(title)
		if slug == "" {
			return "", invalidf("无法从标题生成 slug，请手动填写")
		}
		return slug, nil
	}
	if !ValidSlug(slug) {
		return "", invalidf("slug %q 只能包含小写字母、数字和单个连字符", slug)
	}
	return slug, nil
}

// ensureSlugFree fails with a conflict if another row of model already uses
// slug. excludeID skips the row being edited.
func ensureSlugFree(ctx context.Context, gdb *gorm.DB, model any, slug string, excludeID uint, label string) error {
	var count int64
	query := gdb.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check %s slug: %w", label, err)
	}
	if count > 0 {
		return conflictf("slug %q 已被其他%s使用", slug, label)
	}
	return nil
}

// slugWriteError keeps the conflict message when a concurrent insert wins
// the race past ensureSlugFree.
func slugWriteError(err error, slug, label string) error {
	if isUniqueConstraintError(err) {
		return conflictf("slug %q 已被其他%s使用", slug, label)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("%s不存在", label)
	}
	return fmt.Errorf("save %s: %w", label, err)
}
