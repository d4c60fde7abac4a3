package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeProduction = "production"
	ModeDemo       = "demo"

	MinLeadDuplicateWindow = 24 * time.Hour
)

type PostgresConfig struct {
	DatabaseURL string
	ApplySchema bool
	MaxConns    int
}

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
	CookieSecure       bool
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
}

type LeadsConfig struct {
	MarkerSecret    string
	MarkerTTL       time.Duration
	DuplicateWindow time.Duration
	StrictPhone     bool
}

type CatalogConfig struct {
	SampleFallback  bool
	SlugMaxAttempts int
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RabbitMQConfig struct {
	Enabled bool
	URL     string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	Mode         string
	AppName      string
	Postgres     PostgresConfig
	Rest         RESTconfig
	Auth         AuthConfig
	Leads        LeadsConfig
	Catalog      CatalogConfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

func (c *AppConfig) IsDemo() bool { return c.Mode == ModeDemo }

// LoadConfig reads an optional .env file and then the process environment.
// A missing file is not an error; a malformed one is.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Mode = strings.ToLower(getEnvAsString("MODE", ModeProduction))
	if cfg.Mode != ModeProduction && cfg.Mode != ModeDemo {
		return nil, fmt.Errorf("MODE must be %q or %q, got %q", ModeProduction, ModeDemo, cfg.Mode)
	}

	cfg.AppName = getEnvAsString("APP_NAME", "brokerage-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Rest.CookieSecure = getEnvAsBool("COOKIE_SECURE", cfg.Mode == ModeProduction)

	cfg.Postgres.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Postgres.ApplySchema = getEnvAsBool("DB_APPLY_SCHEMA", true)
	cfg.Postgres.MaxConns = getEnvAsInt("DB_MAX_CONNS", 10)
	if cfg.Mode == ModeProduction && cfg.Postgres.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required in production mode")
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		if cfg.Mode == ModeProduction {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in production mode")
		}
		cfg.Auth.JWTSecret = "demo-only-session-secret"
	}
	cfg.Auth.JWTTTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)
	cfg.Auth.AdminEmail = strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	cfg.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	cfg.Leads.MarkerSecret = getEnvAsString("MARKER_SECRET", cfg.Auth.JWTSecret)
	cfg.Leads.MarkerTTL = getEnvAsDuration("MARKER_TTL", 7*24*time.Hour)
	cfg.Leads.DuplicateWindow = getEnvAsDuration("LEAD_DUPLICATE_WINDOW", 24*time.Hour)
	// The store rejects a second lead with the same key on the same UTC day regardless of the window.
	if cfg.Leads.DuplicateWindow < MinLeadDuplicateWindow {
		return nil, fmt.Errorf("LEAD_DUPLICATE_WINDOW must be at least %s, got %s", MinLeadDuplicateWindow, cfg.Leads.DuplicateWindow)
	}
	cfg.Leads.StrictPhone = getEnvAsBool("LEAD_PHONE_STRICT", true)

	cfg.Catalog.SampleFallback = getEnvAsBool("CATALOG_SAMPLE_FALLBACK", true)
	cfg.Catalog.SlugMaxAttempts = getEnvAsInt("SLUG_MAX_ATTEMPTS", 50)
	if cfg.Catalog.SlugMaxAttempts < 1 {
		return nil, fmt.Errorf("SLUG_MAX_ATTEMPTS must be at least 1")
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", cfg.Redis.Addr != "")
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		log.Println("WARNING: REDIS_ENABLED is true, but REDIS_ADDR is not set. Disabling the listing cache.")
		cfg.Redis.Enabled = false
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.CacheTTL = getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute)

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", cfg.RabbitMQ.URL != "")
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling lead events.")
		cfg.RabbitMQ.Enabled = false
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "info")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to defaultValue, with a warning, when the value is not an int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration accepts Go duration strings such as "24h" or "90m".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
