package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 首页区块标识，顺序即展示顺序
var SectionIDs = []string{"hero", "about", "education", "experience", "projects", "services", "blog", "contact"}

type settingKind int

const (
	kindText settingKind = iota
	kindBool
	kindColor
	kindLink
	kindThemeMode
)

type settingDef struct {
	kind   settingKind
	public bool
}

// 可写入的设置项。section_<id>_visible 另行识别
var settingRegistry = map[string]settingDef{
	db.SettingKeySiteTitle:            {kind: kindText, public: true},
	db.SettingKeySiteTagline:          {kind: kindText, public: true},
	db.SettingKeySiteFavicon:          {kind: kindLink, public: true},
	db.SettingKeyThemePrimaryColor:    {kind: kindColor, public: true},
	db.SettingKeyThemeAccentColor:     {kind: kindColor, public: true},
	db.SettingKeyThemeMode:            {kind: kindThemeMode, public: true},
	db.SettingKeyGoogleAnalyticsID:    {kind: kindText, public: true},
	db.SettingKeyGoogleSiteVerify:     {kind: kindText, public: true},
	db.SettingKeyGoogleTagManagerID:   {kind: kindText, public: true},
	db.SettingKeyHeaderLogo:           {kind: kindLink, public: true},
	db.SettingKeyHeaderCTAText:        {kind: kindText, public: true},
	db.SettingKeyHeaderCTAURL:         {kind: kindLink, public: true},
	db.SettingKeyHeaderSticky:         {kind: kindBool, public: true},
	db.SettingKeyFooterText:           {kind: kindText, public: true},
	db.SettingKeyFooterCopyright:      {kind: kindText, public: true},
	db.SettingKeyFooterShowSocial:     {kind: kindBool, public: true},
	db.SettingKeyContactNotifyEnabled: {kind: kindBool},
}

var (
	colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	themeModes   = []string{"light", "dark", "system"}
)

// SiteSettingService 提供站点键值设置的读取与更新能力
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

// KnownSettingKey reports whether key may be written.
func KnownSettingKey(key string) bool {
	_, ok := lookupSetting(key)
	return ok
}

func lookupSetting(key string) (settingDef, bool) {
	if def, ok := settingRegistry[key]; ok {
		return def, true
	}
	for _, id := range SectionIDs {
		if key == db.SectionVisibilityKey(id) {
			return settingDef{kind: kindBool, public: true}, true
		}
	}
	return settingDef{}, false
}

// Get 读取单个设置，不存在时返回 fallback
func (s *SiteSettingService) Get(ctx context.Context, key, fallback string) (string, error) {
	var setting db.SiteSetting
	if err := s.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load setting %s: %w", key, err)
	}
	return setting.SettingValue, nil
}

// GetMany 批量读取设置，缺失的 key 不出现在结果中
func (s *SiteSettingService) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	var records []db.SiteSetting
	if err := s.db.WithContext(ctx).Where("setting_key IN ?", keys).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	for _, record := range records {
		result[record.SettingKey] = record.SettingValue
	}
	return result, nil
}

// List 返回以 prefix 开头的全部设置，prefix 为空时返回全部
func (s *SiteSettingService) List(ctx context.Context, prefix string) ([]db.SiteSetting, error) {
	query := s.db.WithContext(ctx).Model(&db.SiteSetting{})
	if prefix != "" {
		query = query.Where("setting_key LIKE ?", prefix+"%")
	}

	var records []db.SiteSetting
	if err := query.Order("setting_key asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return records, nil
}

// Public 返回可以暴露给前台的设置
func (s *SiteSettingService) Public(ctx context.Context) (map[string]string, error) {
	records, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(records))
	for _, record := range records {
		if def, ok := lookupSetting(record.SettingKey); ok && def.public {
			result[record.SettingKey] = record.SettingValue
		}
	}
	return result, nil
}

// Set 写入单个设置（upsert）
func (s *SiteSettingService) Set(ctx context.Context, key, value string) (string, error) {
	normalized, err := normalizeSetting(key, value)
	if err != nil {
		return "", err
	}
	if err := upsertSetting(s.db.WithContext(ctx), key, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// SetMany 在一个事务内写入多个设置，任一 key 校验失败则全部不写入
func (s *SiteSettingService) SetMany(ctx context.Context, values map[string]string) (map[string]string, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sanitized := make(map[string]string, len(values))
	for _, key := range keys {
		normalized, err := normalizeSetting(key, values[key])
		if err != nil {
			return nil, err
		}
		sanitized[key] = normalized
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsertSetting(tx, key, sanitized[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}
	return sanitized, nil
}

// Bool 读取布尔设置，无法解析时返回 fallback
func (s *SiteSettingService) Bool(ctx context.Context, key string, fallback bool) (bool, error) {
	raw, err := s.Get(ctx, key, "")
	if err != nil {
		return fallback, err
	}
	return parseBoolSetting(raw, fallback), nil
}

// Int 读取整数设置，无法解析时返回 fallback
func (s *SiteSettingService) Int(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := s.Get(ctx, key, "")
	if err != nil {
		return fallback, err
	}
	value, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		return fallback, nil
	}
	return value, nil
}

// Color 读取颜色设置，非法值返回 fallback
func (s *SiteSettingService) Color(ctx context.Context, key, fallback string) (string, error) {
	raw, err := s.Get(ctx, key, "")
	if err != nil {
		return fallback, err
	}
	raw = strings.TrimSpace(raw)
	if !colorPattern.MatchString(raw) {
		return fallback, nil
	}
	return strings.ToLower(raw), nil
}

// SeedSectionVisibility 为缺失的区块写入 "true"，已有值保持不变
func (s *SiteSettingService) SeedSectionVisibility(ctx context.Context) error {
	records := make([]db.SiteSetting, 0, len(SectionIDs))
	for _, id := range SectionIDs {
		records = append(records, db.SiteSetting{SettingKey: db.SectionVisibilityKey(id), SettingValue: "true"})
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "setting_key"}}, DoNothing: true}).
		Create(&records).Error; err != nil {
		return fmt.Errorf("seed section visibility: %w", err)
	}
	return nil
}

// SectionVisibility 返回区块可见性，缺失的区块视为可见
func (s *SiteSettingService) SectionVisibility(ctx context.Context) (map[string]bool, error) {
	keys := make([]string, 0, len(SectionIDs))
	for _, id := range SectionIDs {
		keys = append(keys, db.SectionVisibilityKey(id))
	}
	values, err := s.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(SectionIDs))
	for _, id := range SectionIDs {
		result[id] = parseBoolSetting(values[db.SectionVisibilityKey(id)], true)
	}
	return result, nil
}

// SetSectionVisible 修改单个区块的可见性
func (s *SiteSettingService) SetSectionVisible(ctx context.Context, sectionID string, visible bool) error {
	id := strings.ToLower(strings.TrimSpace(sectionID))
	if _, err := requireOneOf(id, "栏目", SectionIDs); err != nil {
		return err
	}
	return upsertSetting(s.db.WithContext(ctx), db.SectionVisibilityKey(id), strconv.FormatBool(visible))
}

func normalizeSetting(key, value string) (string, error) {
	def, ok := lookupSetting(key)
	if !ok {
		return "", invalidf("未知的设置项 %q", key)
	}

	trimmed := strings.TrimSpace(value)
	switch def.kind {
	case kindBool:
		parsed, err := strconv.ParseBool(trimmed)
		if err != nil {
			return "", invalidf("%s 只能是 true 或 false", key)
		}
		return strconv.FormatBool(parsed), nil
	case kindColor:
		if trimmed == "" {
			return "", nil
		}
		if !colorPattern.MatchString(trimmed) {
			return "", invalidf("%s 必须是十六进制颜色，例如 #1e293b", key)
		}
		return strings.ToLower(trimmed), nil
	case kindLink:
		return validateLink(trimmed, key, true)
	case kindThemeMode:
		if trimmed == "" {
			return "", nil
		}
		return requireOneOf(strings.ToLower(trimmed), key, themeModes)
	default:
		return trimmed, nil
	}
}

func parseBoolSetting(raw string, fallback bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return parsed
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{SettingKey: key, SettingValue: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"setting_value": value,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
