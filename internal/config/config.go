package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 会員ストアのバックエンド種別。
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSqlx     = "sqlx"
	StoreGorm     = "gorm"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Store
	MemberStore          string
	DatabaseURL          string
	ResetSequenceOnClear bool

	// Member
	StrictJoin bool

	// Rate Limit
	RateLimitGeneral int
	RateLimitJoin    int

	// Logging
	LogLevel string

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// Cookie
	CookieSecure bool

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// ENV_FILE（デフォルト .env）が存在すれば先に読み込むが、設定済みの環境変数は上書きしない。
// 設定値が不正な場合はエラーを返す。
func Load() (*Config, error) {
	if err := loadEnvFile(getEnvString("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{}

	cfg.MemberStore = getEnvString("MEMBER_STORE", StoreMemory)
	switch cfg.MemberStore {
	case StoreMemory, StorePostgres, StoreSqlx, StoreGorm:
	default:
		return nil, fmt.Errorf("unknown MEMBER_STORE %q (expected memory, postgres, sqlx or gorm)", cfg.MemberStore)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.MemberStore != StoreMemory && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: %v", []string{"DATABASE_URL"})
	}

	// Optional fields with defaults
	cfg.ResetSequenceOnClear = getEnvBool("RESET_SEQUENCE_ON_CLEAR", false)
	cfg.StrictJoin = getEnvBool("STRICT_JOIN", true)
	cfg.RateLimitGeneral = getEnvPositiveInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitJoin = getEnvPositiveInt("RATE_LIMIT_JOIN", 10)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

// UsesDatabase はDATABASE_URLを必要とするバックエンドが選択されているかを返す。
func (c *Config) UsesDatabase() bool {
	return c.MemberStore != StoreMemory
}

// loadEnvFile はdotenvファイルを読み込む。ファイルが存在しない場合は何もしない。
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// getEnvPositiveInt は1以上の整数を読み込む。0以下はデフォルト値に戻す。
func getEnvPositiveInt(key string, defaultVal int) int {
	if i := getEnvInt(key, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
