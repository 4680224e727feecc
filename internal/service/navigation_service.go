package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// Direction 导航项移动方向
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

var navLocations = []string{db.NavLocationHeader, db.NavLocationFooter, db.NavLocationBoth}

// NavigationService 管理站点导航链接及其顺序
type NavigationService struct {
	db *gorm.DB
}

// NavigationInput 描述导航项的可编辑字段
type NavigationInput struct {
	Label     string
	Path      string
	Location  string
	ParentID  *uint
	SortOrder *int
	IsVisible *bool
}

// NewNavigationService 构造 NavigationService
func NewNavigationService(gdb *gorm.DB) *NavigationService {
	return &NavigationService{db: gdb}
}

// List 返回全部导航项
func (s *NavigationService) List(ctx context.Context) ([]db.NavigationItem, error) {
	return listRows[db.NavigationItem](ctx, s.db, false, orderBySort)
}

// ListVisible 返回前台可见的导航项
func (s *NavigationService) ListVisible(ctx context.Context) ([]db.NavigationItem, error) {
	return listRows[db.NavigationItem](ctx, s.db, true, orderBySort)
}

// ListByLocation 返回指定位置的可见导航项，location 为 both 的条目同时出现在页头与页脚
func (s *NavigationService) ListByLocation(ctx context.Context, location string) ([]db.NavigationItem, error) {
	loc, err := requireOneOf(strings.ToLower(location), "位置", navLocations)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("is_visible = ?", true)
	if loc != db.NavLocationBoth {
		query = query.Where("location IN ?", []string{loc, db.NavLocationBoth})
	}

	var items []db.NavigationItem
	if err := query.Order(orderBySort).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get 根据主键获取导航项
func (s *NavigationService) Get(ctx context.Context, id uint) (*db.NavigationItem, error) {
	return getRow[db.NavigationItem](ctx, s.db, id, "导航项")
}

// Create 新建导航项，默认追加到末尾
func (s *NavigationService) Create(ctx context.Context, input NavigationInput) (*db.NavigationItem, error) {
	item := db.NavigationItem{}
	if err := s.apply(ctx, &item, input); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort[db.NavigationItem](ctx, s.db, input.SortOrder)
	if err != nil {
		return nil, err
	}
	item.SortOrder = sortOrder
	item.IsVisible = resolveVisible(input.IsVisible, true)

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create navigation item: %w", err)
	}
	return &item, nil
}

// Update 更新导航项
func (s *NavigationService) Update(ctx context.Context, id uint, input NavigationInput) (*db.NavigationItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, item, input); err != nil {
		return nil, err
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	item.IsVisible = resolveVisible(input.IsVisible, item.IsVisible)

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update navigation item: %w", err)
	}
	return item, nil
}

// Delete 删除导航项，子项提升为顶级
func (s *NavigationService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.NavigationItem{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach navigation children: %w", err)
		}
		return deleteRow[db.NavigationItem](ctx, tx, id, "导航项")
	})
}

// Move 将 index 位置的导航项与相邻项交换，随后按新顺序为全部导航项重新编号。
// 越界移动不做任何修改，直接返回当前顺序
func (s *NavigationService) Move(ctx context.Context, index int, direction Direction) ([]db.NavigationItem, error) {
	var target int
	switch direction {
	case DirectionUp:
		target = index - 1
	case DirectionDown:
		target = index + 1
	default:
		return nil, invalidf("方向只能是 up 或 down")
	}

	var items []db.NavigationItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order(orderBySort).Find(&items).Error; err != nil {
			return err
		}
		if index < 0 || index >= len(items) || target < 0 || target >= len(items) {
			return errNoMove
		}

		items[index], items[target] = items[target], items[index]
		for idx := range items {
			if err := tx.Model(&items[idx]).UpdateColumn("sort_order", idx).Error; err != nil {
				return err
			}
			items[idx].SortOrder = idx
		}
		return nil
	})
	if errors.Is(err, errNoMove) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("move navigation item: %w", err)
	}
	return items, nil
}

var errNoMove = errors.New("navigation move out of bounds")

// Reorder 按给定 id 顺序重新编号，id 不能重复且必须存在
func (s *NavigationService) Reorder(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return invalidf("导航排序包含无效的 ID")
		}
		if _, ok := seen[id]; ok {
			return invalidf("导航排序中 ID %d 重复", id)
		}
		seen[id] = struct{}{}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range ids {
			result := tx.Model(&db.NavigationItem{}).Where("id = ?", id).UpdateColumn("sort_order", idx)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return notFoundf("导航项 %d 不存在", id)
			}
		}
		return nil
	})
}

func (s *NavigationService) apply(ctx context.Context, item *db.NavigationItem, input NavigationInput) error {
	label, err := requireText(input.Label, "名称")
	if err != nil {
		return err
	}
	path, err := validateNavPath(input.Path)
	if err != nil {
		return err
	}
	location := db.NavLocationHeader
	if strings.TrimSpace(input.Location) != "" {
		location, err = requireOneOf(strings.ToLower(input.Location), "位置", navLocations)
		if err != nil {
			return err
		}
	}

	if input.ParentID != nil {
		parentID := *input.ParentID
		if item.ID != 0 && parentID == item.ID {
			return invalidf("导航项不能以自身为父级")
		}
		if _, err := s.Get(ctx, parentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalidf("父级导航项 %d 不存在", parentID)
			}
			return err
		}
	}

	item.Label = label
	item.Path = path
	item.Location = location
	item.ParentID = input.ParentID
	return nil
}

// validateNavPath accepts in-page anchors in addition to regular links.
func validateNavPath(value string) (string, error) {
	path, err := requireText(value, "链接")
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(path, "#") {
		return path, nil
	}
	return validateLink(path, "链接", false)
}
