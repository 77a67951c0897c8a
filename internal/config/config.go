// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Auth      AuthConfig      `koanf:"auth"`
	Invite    InviteConfig    `koanf:"invite"`
	Email     EmailConfig     `koanf:"email"`
	Upload    UploadConfig    `koanf:"upload"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type AuthConfig struct {
	PrivateKeyPath  string        `koanf:"private_key_path"`
	PublicKeyPath   string        `koanf:"public_key_path"`
	SessionValidity time.Duration `koanf:"session_validity"`
	Issuer          string        `koanf:"issuer"`
	Audience        string        `koanf:"audience"`
	FounderUID      string        `koanf:"founder_uid"`
}

type InviteConfig struct {
	Expiry    time.Duration `koanf:"expiry"`
	AcceptURL string        `koanf:"accept_url"`
}

type EmailConfig struct {
	Enabled      bool   `koanf:"enabled"`
	APIKey       string `koanf:"api_key"`
	FromAddress  string `koanf:"from_address"`
	ContactInbox string `koanf:"contact_inbox"`
	HireInbox    string `koanf:"hire_inbox"`
}

type UploadConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Bucket          string        `koanf:"bucket"`
	Region          string        `koanf:"region"`
	Endpoint        string        `koanf:"endpoint"`
	AccessKeyID     string        `koanf:"access_key_id"`
	SecretAccessKey string        `koanf:"secret_access_key"`
	PublicBaseURL   string        `koanf:"public_base_url"`
	PresignExpiry   time.Duration `koanf:"presign_expiry"`
}

type RateLimitConfig struct {
	Requests       int           `koanf:"requests"`
	Window         time.Duration `koanf:"window"`
	Burst          int           `koanf:"burst"`
	IntakeRequests int           `koanf:"intake_requests"`
	IntakeBurst    int           `koanf:"intake_burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "JD Studio Backoffice",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"auth.private_key_path": "keys/private.pem",
		"auth.public_key_path":  "keys/public.pem",
		"auth.session_validity": "120h",
		"auth.issuer":           "backoffice",
		"auth.audience":         "backoffice-api",
		"auth.founder_uid":      "founder-001",

		"invite.expiry":     "168h",
		"invite.accept_url": "http://localhost:3000/admin/login",

		"email.enabled":       false,
		"email.from_address":  "noreply@jeffdev.studio",
		"email.contact_inbox": "contact@jeffdev.studio",
		"email.hire_inbox":    "hire@jeffdev.studio",

		"upload.enabled":        false,
		"upload.region":         "auto",
		"upload.presign_expiry": "5m",

		"rate_limit.requests":        100,
		"rate_limit.window":          "1m",
		"rate_limit.burst":           20,
		"rate_limit.intake_requests": 5,
		"rate_limit.intake_burst":    2,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "backoffice",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"AUTH_PRIVATE_KEY_PATH":       "auth.private_key_path",
	"AUTH_PUBLIC_KEY_PATH":        "auth.public_key_path",
	"AUTH_SESSION_VALIDITY":       "auth.session_validity",
	"AUTH_ISSUER":                 "auth.issuer",
	"AUTH_AUDIENCE":               "auth.audience",
	"FOUNDER_UID":                 "auth.founder_uid",
	"INVITE_EXPIRY":               "invite.expiry",
	"INVITE_ACCEPT_URL":           "invite.accept_url",
	"EMAIL_ENABLED":               "email.enabled",
	"RESEND_API_KEY":              "email.api_key",
	"NOREPLY_EMAIL":               "email.from_address",
	"CONTACT_EMAIL":               "email.contact_inbox",
	"HIRE_EMAIL":                  "email.hire_inbox",
	"UPLOAD_ENABLED":              "upload.enabled",
	"UPLOAD_BUCKET":               "upload.bucket",
	"UPLOAD_REGION":               "upload.region",
	"UPLOAD_ENDPOINT":             "upload.endpoint",
	"UPLOAD_ACCESS_KEY_ID":        "upload.access_key_id",
	"UPLOAD_SECRET_ACCESS_KEY":    "upload.secret_access_key",
	"UPLOAD_PUBLIC_BASE_URL":      "upload.public_base_url",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Auth.PrivateKeyPath == "" {
		return fmt.Errorf("AUTH_PRIVATE_KEY_PATH is required")
	}

	if c.Auth.PublicKeyPath == "" {
		return fmt.Errorf("AUTH_PUBLIC_KEY_PATH is required")
	}

	if c.Auth.FounderUID == "" {
		return fmt.Errorf("FOUNDER_UID is required")
	}

	if c.Email.Enabled && c.Email.APIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required when email is enabled")
	}

	if c.Upload.Enabled {
		if c.Upload.Bucket == "" {
			return fmt.Errorf("UPLOAD_BUCKET is required when uploads are enabled")
		}
		if c.Upload.AccessKeyID == "" || c.Upload.SecretAccessKey == "" {
			return fmt.Errorf(
				"UPLOAD_ACCESS_KEY_ID and UPLOAD_SECRET_ACCESS_KEY are required when uploads are enabled",
			)
		}
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if c.Invite.Expiry <= 0 {
		return fmt.Errorf("invite.expiry must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
