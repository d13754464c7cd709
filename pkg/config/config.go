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

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	ShiftViews   ShiftViewConfig
	Invoicing    InvoicingConfig
	Certificates CertificateConfig
	Availability AvailabilityConfig
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

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ShiftViewConfig tunes caching of the composed shift views.
type ShiftViewConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// InvoicingConfig carries the fixed figures invoices are generated with.
type InvoicingConfig struct {
	DefaultHourlyRate float64
	TransportFee      float64
	DueInDays         int
}

// CertificateConfig controls the compliance derivations.
type CertificateConfig struct {
	ExpiryWarningDays int
}

// AvailabilityConfig holds the editing range offered before a day has slots.
type AvailabilityConfig struct {
	DefaultStartHour float64
	DefaultEndHour   float64
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

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.ShiftViews = ShiftViewConfig{
		CacheEnabled: v.GetBool("SHIFT_VIEW_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("SHIFT_VIEW_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Invoicing = InvoicingConfig{
		DefaultHourlyRate: v.GetFloat64("INVOICE_DEFAULT_HOURLY_RATE"),
		TransportFee:      v.GetFloat64("INVOICE_TRANSPORT_FEE"),
		DueInDays:         v.GetInt("INVOICE_DUE_IN_DAYS"),
	}

	cfg.Certificates = CertificateConfig{
		ExpiryWarningDays: v.GetInt("CERTIFICATE_EXPIRY_WARNING_DAYS"),
	}

	cfg.Availability = AvailabilityConfig{
		DefaultStartHour: v.GetFloat64("AVAILABILITY_DEFAULT_START_HOUR"),
		DefaultEndHour:   v.GetFloat64("AVAILABILITY_DEFAULT_END_HOUR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "carebridge")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SHIFT_VIEW_CACHE_ENABLED", false)
	v.SetDefault("SHIFT_VIEW_CACHE_TTL", "5m")

	v.SetDefault("INVOICE_DEFAULT_HOURLY_RATE", 80.0)
	v.SetDefault("INVOICE_TRANSPORT_FEE", 50.0)
	v.SetDefault("INVOICE_DUE_IN_DAYS", 14)

	v.SetDefault("CERTIFICATE_EXPIRY_WARNING_DAYS", 30)

	v.SetDefault("AVAILABILITY_DEFAULT_START_HOUR", 9.0)
	v.SetDefault("AVAILABILITY_DEFAULT_END_HOUR", 17.0)
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
