package db

import "time"

// SiteSetting 存储站点级键值对，布尔值以 "true"/"false" 保存，图片可以是 data URI。
type SiteSetting struct {
	SettingKey   string    `gorm:"primaryKey;size:100" json:"settingKey"`
	SettingValue string    `gorm:"type:text" json:"settingValue"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteTitle 表示站点标题。
	SettingKeySiteTitle = "site_title"
	// SettingKeySiteTagline 表示站点副标题。
	SettingKeySiteTagline = "site_tagline"
	// SettingKeySiteFavicon 表示站点 favicon，通常为 data URI。
	SettingKeySiteFavicon = "site_favicon"

	SettingKeyThemePrimaryColor = "theme_primary_color"
	SettingKeyThemeAccentColor  = "theme_accent_color"
	SettingKeyThemeMode         = "theme_mode"

	SettingKeyGoogleAnalyticsID    = "google_analytics_id"
	SettingKeyGoogleSiteVerify     = "google_site_verification"
	SettingKeyGoogleTagManagerID   = "google_tag_manager_id"
	SettingKeyHeaderLogo           = "header_logo"
	SettingKeyHeaderCTAText        = "header_cta_text"
	SettingKeyHeaderCTAURL         = "header_cta_url"
	SettingKeyHeaderSticky         = "header_sticky"
	SettingKeyFooterText           = "footer_text"
	SettingKeyFooterCopyright      = "footer_copyright"
	SettingKeyFooterShowSocial     = "footer_show_social"
	SettingKeyContactNotifyEnabled = "contact_notify_enabled"
)

// SectionVisibilityKey returns the setting key gating a homepage section.
func SectionVisibilityKey(sectionID string) string {
	return "section_" + sectionID + "_visible"
}
