package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maekabu-office/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCompanyID 自社（株式会社まえかぶ）の会社 ID
const DefaultCompanyID = "c7b60aee-a256-4880-b308-fa02e0394712"

// Config アプリケーション設定
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Captcha  CaptchaConfig  `mapstructure:"captcha"`
	Company  CompanyConfig  `mapstructure:"company"`
	Billing  BillingConfig  `mapstructure:"billing"`
	IDGen    IDGenConfig    `mapstructure:"idgen"`
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// IsRelease 本番モードか
func (c ServerConfig) IsRelease() bool {
	return strings.EqualFold(strings.TrimSpace(c.Mode), "release")
}

// LogConfig ログ設定
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions logger 用設定へ変換する
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig コネクションプール設定
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig ホスティング DB の接続設定
// url / anon_key / service_role_key の 3 つが必須値
type DatabaseConfig struct {
	Driver         string             `mapstructure:"driver"` // postgres / sqlite
	URL            string             `mapstructure:"url"`
	AnonKey        string             `mapstructure:"anon_key"`
	ServiceRoleKey string             `mapstructure:"service_role_key"`
	Pool           DatabasePoolConfig `mapstructure:"pool"`
}

// SessionConfig セッショントークン設定
type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	CookieName  string `mapstructure:"cookie_name"`
	ExpireHours int    `mapstructure:"expire_hours"`
	Secure      bool   `mapstructure:"secure"`
}

// AuthConfig 認証設定
type AuthConfig struct {
	// FixturePasswordEnabled テストフィクスチャ用に固定パスワード "password" を許可する
	FixturePasswordEnabled bool `mapstructure:"fixture_password_enabled"`
}

// RedisConfig Redis 設定
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 非同期キュー設定
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// StorageConfig オブジェクトストレージ設定
type StorageConfig struct {
	Driver            string   `mapstructure:"driver"` // gcs / memory
	Bucket            string   `mapstructure:"bucket"`
	DocumentBucket    string   `mapstructure:"document_bucket"`
	PublicBaseURL     string   `mapstructure:"public_base_url"`
	CredentialsJSON   string   `mapstructure:"credentials_json"`
	MaxSize           int64    `mapstructure:"max_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// CORSConfig CORS 設定
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig セキュリティ設定
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
	PasswordPolicy PasswordPolicyConfig `mapstructure:"password_policy"`
}

// LoginRateLimitConfig ログイン試行の制限
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// PasswordPolicyConfig パスワードポリシー
type PasswordPolicyConfig struct {
	MinLength      int  `mapstructure:"min_length"`
	RequireUpper   bool `mapstructure:"require_upper"`
	RequireLower   bool `mapstructure:"require_lower"`
	RequireNumber  bool `mapstructure:"require_number"`
	RequireSpecial bool `mapstructure:"require_special"`
}

// CaptchaConfig ログイン画像キャプチャ設定
type CaptchaConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Length        int  `mapstructure:"length"`
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	NoiseCount    int  `mapstructure:"noise_count"`
	ShowLine      int  `mapstructure:"show_line"`
	ExpireSeconds int  `mapstructure:"expire_seconds"`
	MaxStore      int  `mapstructure:"max_store"`
}

// CompanyConfig 自社情報の既定値
type CompanyConfig struct {
	DefaultID         string `mapstructure:"default_id"`
	DefaultDepartment string `mapstructure:"default_department"`
}

// BillingConfig 請求関連設定
type BillingConfig struct {
	OverdueSweepMinutes int    `mapstructure:"overdue_sweep_minutes"`
	InvoiceNumberPrefix string `mapstructure:"invoice_number_prefix"`
	DefaultBankAccount  string `mapstructure:"default_bank_account"`
}

// IDGenConfig snowflake ノード設定
type IDGenConfig struct {
	NodeID int64 `mapstructure:"node_id"`
}

// Load config.yml と環境変数から設定を読み込む
func Load() *Config {
	// .env はローカル開発用、存在しなくてもよい
	if err := godotenv.Load(); err != nil {
		logger.Debugw("dotenv_not_loaded", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("database.url", "DATABASE_URL", "SUPABASE_DB_URL")
	_ = v.BindEnv("database.anon_key", "DATABASE_ANON_KEY", "SUPABASE_ANON_KEY")
	_ = v.BindEnv("database.service_role_key", "DATABASE_SERVICE_ROLE_KEY", "SUPABASE_SERVICE_ROLE_KEY")

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed", "error", err, "fallback", "env_or_defaults")
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("設定の解析に失敗しました: %w", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "backoffice.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.anon_key", "")
	v.SetDefault("database.service_role_key", "")
	v.SetDefault("database.pool.max_open_conns", 10)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 1800)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 300)
	v.SetDefault("session.secret", "change-me-session-secret")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.expire_hours", 24)
	v.SetDefault("session.secure", false)
	v.SetDefault("auth.fixture_password_enabled", false)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "mk")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{"default": 5, "documents": 2})
	v.SetDefault("storage.driver", "gcs")
	v.SetDefault("storage.bucket", "vendor-invoices")
	v.SetDefault("storage.document_bucket", "invoice-documents")
	v.SetDefault("storage.public_base_url", "https://storage.googleapis.com")
	v.SetDefault("storage.credentials_json", "")
	v.SetDefault("storage.max_size", 20971520)
	v.SetDefault("storage.allowed_extensions", []string{".pdf", ".png", ".jpg", ".jpeg", ".xlsx", ".docx"})
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID", "apikey"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("security.password_policy.min_length", 10)
	v.SetDefault("security.password_policy.require_upper", false)
	v.SetDefault("security.password_policy.require_lower", true)
	v.SetDefault("security.password_policy.require_number", true)
	v.SetDefault("security.password_policy.require_special", false)
	v.SetDefault("captcha.enabled", false)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.noise_count", 2)
	v.SetDefault("captcha.show_line", 2)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 4096)
	v.SetDefault("company.default_id", DefaultCompanyID)
	v.SetDefault("company.default_department", "株式会社まえかぶ")
	v.SetDefault("billing.overdue_sweep_minutes", 60)
	v.SetDefault("billing.invoice_number_prefix", "INV")
	v.SetDefault("billing.default_bank_account", "MAIN002")
	v.SetDefault("idgen.node_id", 1)
}

// Validate 起動前の必須値チェック
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var missing []string
	if strings.TrimSpace(c.Database.URL) == "" {
		missing = append(missing, "database.url")
	}
	if strings.TrimSpace(c.Database.AnonKey) == "" {
		missing = append(missing, "database.anon_key")
	}
	if strings.TrimSpace(c.Database.ServiceRoleKey) == "" {
		missing = append(missing, "database.service_role_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required config missing: %s", strings.Join(missing, ", "))
	}
	if c.Server.IsRelease() && c.Auth.FixturePasswordEnabled {
		return errors.New("auth.fixture_password_enabled must be false in release mode")
	}
	return nil
}
