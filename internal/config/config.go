package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	GinMode        string
	SiteBaseURL    string
	RequestTimeout time.Duration
	CORSOrigins    []string

	DatabaseDriver       string
	DatabasePath         string
	DatabaseURL          string
	DatabaseMaxOpenConns int

	SessionSecret string
	JWTSecret     string
	JWTIssuer     string
	TokenTTL      time.Duration

	UploadDir      string
	UploadURLPath  string
	UploadMaxBytes int64

	SuperRootUserName string
	SuperRootEmail    string
	SuperRootPassword string

	Integrations IntegrationConfig
}

// IntegrationConfig 描述仪表盘使用的第三方数据源，留空即视为未配置。
type IntegrationConfig struct {
	GAPropertyID             string
	GAAccessToken            string
	SearchConsoleSite        string
	SearchConsoleAccessToken string
	PageSpeedAPIKey          string
	PageSpeedURL             string
	PageSpeedCacheTTL        time.Duration
	HostDiskPath             string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "8080")
	siteBaseURL := strings.TrimRight(envOr("SITE_BASE_URL", "http://localhost:"+port), "/")
	uploadDir := envOr("UPLOAD_DIR", "web/static/uploads")

	return AppConfig{
		ListenAddr:     envOr("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:           port,
		GinMode:        envOr("GIN_MODE", "release"),
		SiteBaseURL:    siteBaseURL,
		RequestTimeout: time.Duration(envOrInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		CORSOrigins:    parseCSV(envOr("CORS_ORIGINS", "")),

		DatabaseDriver:       strings.ToLower(envOr("DATABASE_DRIVER", "sqlite")),
		DatabasePath:         envOr("DATABASE_PATH", "folio.db"),
		DatabaseURL:          envOr("DATABASE_URL", ""),
		DatabaseMaxOpenConns: envOrInt("DATABASE_MAX_OPEN_CONNS", 5),

		SessionSecret: envOr("SESSION_SECRET", "folio-dev-secret"),
		JWTSecret:     envOr("JWT_SECRET", "folio-dev-jwt-secret"),
		JWTIssuer:     envOr("JWT_ISSUER", "folio"),
		TokenTTL:      time.Duration(envOrInt("TOKEN_TTL_HOURS", 12)) * time.Hour,

		UploadDir:      uploadDir,
		UploadURLPath:  envOr("UPLOAD_URL_PATH", "/static/uploads"),
		UploadMaxBytes: int64(envOrInt("UPLOAD_MAX_BYTES", 5*1024*1024)),

		SuperRootUserName: envOr("SUPER_ROOT_USER_NAME", ""),
		SuperRootEmail:    envOr("SUPER_ROOT_EMAIL", ""),
		SuperRootPassword: envOr("SUPER_ROOT_PASSWORD", ""),

		Integrations: IntegrationConfig{
			GAPropertyID:             envOr("GA_PROPERTY_ID", ""),
			GAAccessToken:            envOr("GA_ACCESS_TOKEN", ""),
			SearchConsoleSite:        envOr("SEARCH_CONSOLE_SITE", ""),
			SearchConsoleAccessToken: envOr("SEARCH_CONSOLE_ACCESS_TOKEN", ""),
			PageSpeedAPIKey:          envOr("PAGESPEED_API_KEY", ""),
			PageSpeedURL:             envOr("PAGESPEED_URL", siteBaseURL),
			PageSpeedCacheTTL:        time.Duration(envOrInt("PAGESPEED_CACHE_MINUTES", 60)) * time.Minute,
			HostDiskPath:             envOr("HOST_DISK_PATH", uploadDir),
		},
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
