package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBPath      string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	ServerPort  string
	CORSOrigins string
	LogFormat   string

	RedisURL         string
	LoginMaxAttempts int
	LoginWindow      time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "exam_priority"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DBPath:      getEnv("DB_PATH", "exam_priority.db"),

		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),

		ServerPort:  getEnv("SERVER_PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),

		RedisURL:         getEnv("REDIS_URL", ""),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      getEnvDuration("LOGIN_WINDOW", 15*time.Minute),

		AdminName:     getEnv("ADMIN_NAME", "Admin User"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@123"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be 'postgres' or 'sqlite', got %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.LoginMaxAttempts <= 0 || c.LoginWindow <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS and LOGIN_WINDOW must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
