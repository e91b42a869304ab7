package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Location  LocationConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
	Host string
}

// StorageConfig selects the event/participation store. Backend "postgres" is
// the default; "memory" keeps everything in-process and is only safe with a
// single serving instance.
type StorageConfig struct {
	Backend     string
	PostgresURL string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type LocationConfig struct {
	MaxOffsetDegrees  float64
	NearRadiusKm      float64
	AreaCellPrecision int
}

type RateLimitConfig struct {
	JoinsPerMin       int
	EventsPerHour     int
	RequestsPerMinute int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Storage: StorageConfig{
			Backend:     getEnv("STORAGE_BACKEND", "postgres"),
			PostgresURL: getEnv("DATABASE_URL", "postgres://localhost:5432/mysterymeet?sslmode=disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
		},
		Location: LocationConfig{
			MaxOffsetDegrees:  getEnvAsFloat("LOCATION_MAX_OFFSET_DEGREES", 0.007),
			NearRadiusKm:      getEnvAsFloat("FEED_NEAR_RADIUS_KM", 5),
			AreaCellPrecision: getEnvAsInt("AREA_CELL_PRECISION", 5),
		},
		RateLimit: RateLimitConfig{
			JoinsPerMin:       getEnvAsInt("RATE_LIMIT_JOINS_PER_MIN", 10),
			EventsPerHour:     getEnvAsInt("RATE_LIMIT_EVENTS_PER_HOUR", 5),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MIN", 120),
		},
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
