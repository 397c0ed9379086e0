package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogFixture  = "fixture"
	CatalogPostgres = "postgres"
)

type Config struct {
	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GinMode      string
	Debug        bool

	// Sailing source
	UseMocks        bool
	FerryBase       string
	XchangeUser     string
	XchangePassword string
	UpstreamTimeout time.Duration
	UpstreamRetries int

	// Reference data
	CatalogBackend string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string

	// Cache
	RedisHost string
	RedisPort string
	CacheTTL  time.Duration

	// Catalog allow-lists
	AllowedSuppliers []string
	AllowedMethods   []string

	RateLimitPerWindow int
	RateLimitWindow    time.Duration

	SessionIdle time.Duration
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	return FromEnv(), nil
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	ferryBase := getEnv("FERRY_BASE", "")

	// Live mode needs a base URL and an explicit opt-out of the fixtures.
	useMocks := true
	if ferryBase != "" {
		useMocks = getEnvAsBool("USE_MOCKS", false)
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 5)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 10)) * time.Second,
		GinMode:      getEnv("GIN_MODE", "release"),
		Debug:        getEnvAsBool("DEBUG", false),

		UseMocks:        useMocks,
		FerryBase:       ferryBase,
		XchangeUser:     getEnv("XCHANGE_USER", ""),
		XchangePassword: getEnv("XCHANGE_PSW", ""),
		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT", 10)) * time.Second,
		UpstreamRetries: getEnvAsInt("UPSTREAM_RETRIES", 2),

		CatalogBackend: strings.ToLower(getEnv("CATALOG_BACKEND", CatalogFixture)),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "ferry_booking"),

		RedisHost: getEnv("REDIS_HOST", ""),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		CacheTTL:  time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 86400)) * time.Second,

		AllowedSuppliers: getEnvAsList("ALLOWED_SUPPLIERS", []string{"BFT", "POT"}),
		AllowedMethods:   getEnvAsList("ALLOWED_METHODS", []string{"CAR", "HCR"}),

		RateLimitPerWindow: getEnvAsInt("RATE_LIMIT_PER_WINDOW", 20),
		RateLimitWindow:    time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 10)) * time.Second,

		SessionIdle: time.Duration(getEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
	}
}

func (c *Config) Validate() error {
	if !c.UseMocks && c.FerryBase == "" {
		return errors.New("FERRY_BASE is required when USE_MOCKS is false")
	}
	if c.CatalogBackend != CatalogFixture && c.CatalogBackend != CatalogPostgres {
		return errors.New("CATALOG_BACKEND must be fixture or postgres, got " + c.CatalogBackend)
	}
	return nil
}

func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value >= 0 {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
