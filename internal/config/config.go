package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string
	GinMode    string
	ServerPort int

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     int
	RedisPassword string

	SessionSecret  string
	JWTSecret      string
	JWTExpiryHours int

	OpenAIAPIKey string

	SMTPHost                string
	SMTPPort                int
	SMTPUsername            string
	SMTPPassword            string
	MailFrom                string
	FrontendURL             string
	ResetTokenExpiryMinutes int

	UploadPath  string
	OverdueCron string
	PurgeCron   string

	RateLimitRequests      int
	RateLimitWindowSeconds int
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=Local",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) ResetTokenExpiry() time.Duration {
	return time.Duration(c.ResetTokenExpiryMinutes) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.GinMode == "release"
}

// MailEnabled reports whether an SMTP relay is configured
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "activityuser")
	v.SetDefault("DB_PASSWORD", "activitypassword")
	v.SetDefault("DB_NAME", "activity_tracker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SESSION_SECRET", "default-secret-key-change-me")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "noreply@activity-tracker.local")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("RESET_TOKEN_EXPIRY_MINUTES", 30)
	v.SetDefault("UPLOAD_PATH", "uploads/profiles")
	v.SetDefault("OVERDUE_CRON", "0 0 * * *")
	v.SetDefault("PURGE_CRON", "30 0 * * *")
	v.SetDefault("RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:     v.GetString("APP_ENV"),
		GinMode:    v.GetString("GIN_MODE"),
		ServerPort: v.GetInt("SERVER_PORT"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetInt("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetInt("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		SessionSecret:  v.GetString("SESSION_SECRET"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),

		OpenAIAPIKey: v.GetString("OPENAI_API_KEY"),

		SMTPHost:                v.GetString("SMTP_HOST"),
		SMTPPort:                v.GetInt("SMTP_PORT"),
		SMTPUsername:            v.GetString("SMTP_USERNAME"),
		SMTPPassword:            v.GetString("SMTP_PASSWORD"),
		MailFrom:                v.GetString("MAIL_FROM"),
		FrontendURL:             v.GetString("FRONTEND_URL"),
		ResetTokenExpiryMinutes: v.GetInt("RESET_TOKEN_EXPIRY_MINUTES"),

		UploadPath:  v.GetString("UPLOAD_PATH"),
		OverdueCron: v.GetString("OVERDUE_CRON"),
		PurgeCron:   v.GetString("PURGE_CRON"),

		RateLimitRequests:      v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
	}

	switch cfg.DBDriver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.ResetTokenExpiryMinutes <= 0 {
		return nil, fmt.Errorf("RESET_TOKEN_EXPIRY_MINUTES must be positive")
	}

	return cfg, nil
}
