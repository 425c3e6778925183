package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Snapshot backend identifiers.
const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	AI       AIConfig
	Exports  ExportsConfig
}

// StoreConfig selects the snapshot persistence backend.
type StoreConfig struct {
	Backend string
	DataDir string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the seeded admin account and token settings.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiration     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AIConfig configures the external generative-text service.
type AIConfig struct {
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Fallback string
}

// ExportsConfig controls where rendered PDFs/CSVs are kept.
type ExportsConfig struct {
	StorageDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
		DataDir: v.GetString("STORE_DATA_DIR"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiration:     parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.AI = AIConfig{
		BaseURL:  v.GetString("AI_BASE_URL"),
		APIKey:   v.GetString("AI_API_KEY"),
		Model:    v.GetString("AI_MODEL"),
		Timeout:  parseDuration(v.GetString("AI_TIMEOUT"), 15*time.Second),
		Fallback: v.GetString("AI_FALLBACK_SUMMARY"),
	}

	cfg.Exports = ExportsConfig{StorageDir: v.GetString("EXPORTS_STORAGE_DIR")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("STORE_DATA_DIR", "./data")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_EMAIL", "admin@school.local")
	// bcrypt of "admin123"; override outside development.
	v.SetDefault("ADMIN_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AI_BASE_URL", "")
	v.SetDefault("AI_API_KEY", "")
	v.SetDefault("AI_MODEL", "")
	v.SetDefault("AI_TIMEOUT", "15s")
	v.SetDefault("AI_FALLBACK_SUMMARY", "Summary is not available right now.")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
