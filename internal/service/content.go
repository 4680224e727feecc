package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

const orderBySort = "sort_order asc, id asc"

// listRows returns rows of T in the given order. visibleOnly restricts the
// result to public rows.
func listRows[T any](ctx context.Context, gdb *gorm.DB, visibleOnly bool, order string) ([]T, error) {
	query := gdb.WithContext(ctx).Model(new(T))
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}

	var rows []T
	if err := query.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func getRow[T any](ctx context.Context, gdb *gorm.DB, id uint, label string) (*T, error) {
	var row T
	if err := gdb.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("%s %d 不存在", label, id)
		}
		return nil, fmt.Errorf("get %s: %w", label, err)
	}
	return &row, nil
}

func deleteRow[T any](ctx context.Context, gdb *gorm.DB, id uint, label string) error {
	result := gdb.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", label, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("%s %d 不存在", label, id)
	}
	return nil
}

// nextSortOrder appends new rows after the current last one.
func nextSortOrder[T any](ctx context.Context, gdb *gorm.DB) (int, error) {
	var maxSort int
	if err := gdb.WithContext(ctx).Model(new(T)).Select("COALESCE(MAX(sort_order), -1)").Scan(&maxSort).Error; err != nil {
		return 0, err
	}
	return maxSort + 1, nil
}

func resolveSort[T any](ctx context.Context, gdb *gorm.DB, sortPtr *int) (int, error) {
	if sortPtr != nil {
		return *sortPtr, nil
	}
	order, err := nextSortOrder[T](ctx, gdb)
	if err != nil {
		return 0, fmt.Errorf("resolve sort order: %w", err)
	}
	return order, nil
}

func resolveVisible(visible *bool, fallback bool) bool {
	if visible != nil {
		return *visible
	}
	return fallback
}

func requireText(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalidf("%s不能为空", field)
	}
	return trimmed, nil
}

func requireOneOf(value, field string, allowed []string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range allowed {
		if strings.EqualFold(trimmed, candidate) {
			return candidate, nil
		}
	}
	return "", invalidf("%s必须是以下之一：%s", field, strings.Join(allowed, ", "))
}

// validateLink accepts empty values, absolute http(s) URLs, site relative
// paths and, when allowData is set, inline data URIs.
func validateLink(value, field string, allowData bool) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if allowData && strings.HasPrefix(trimmed, "data:") {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		return trimmed, nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", invalidf("%s必须是有效的 http(s) 链接", field)
	}
	return trimmed, nil
}

func validateLinks(values []string, field string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range cleanList(values) {
		link, err := validateLink(value, field, true)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, nil
}

// cleanList trims elements and drops empty ones, keeping order.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01"}

// parseDate accepts RFC 3339 timestamps, plain dates and year-month values.
func parseDate(value, field string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}
	return nil, invalidf("%s必须是日期（YYYY-MM-DD）", field)
}

// parseDateRange validates a required start and an optional end; a nil end
// means the entry is ongoing.
func parseDateRange(start, end string) (time.Time, *time.Time, error) {
	startDate, err := parseDate(start, "开始日期")
	if err != nil {
		return time.Time{}, nil, err
	}
	if startDate == nil {
		return time.Time{}, nil, invalidf("开始日期不能为空")
	}
	endDate, err := parseDate(end, "结束日期")
	if err != nil {
		return time.Time{}, nil, err
	}
	if endDate != nil && endDate.Before(*startDate) {
		return time.Time{}, nil, invalidf("结束日期不能早于开始日期")
	}
	return *startDate, endDate, nil
}
