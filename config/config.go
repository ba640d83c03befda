// Package config provides configuration management for the blog application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and reported in a single error, so a misconfigured deployment fails fast
// with the full list of what is wrong.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// DatabaseConfig holds the settings for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration: the bcrypt cost used
// when hashing passwords at registration, and the browser session settings.
type AuthConfig struct {
	BcryptCost    int           // Cost factor for password hashing
	SessionTTL    time.Duration // Lifetime of a browser session
	SessionCookie string        // Name of the session cookie
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // Port for the HTTP server
}

// StorageConfig selects the article/user store backend. The memory driver
// runs the whole application without a database, which is useful for local
// experimentation; postgres is the default.
type StorageConfig struct {
	Driver string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
	Storage  *StorageConfig
}

// getRequiredEnv reads a variable that must be present. A missing variable is
// recorded in the errors slice rather than failing immediately, so all
// problems are reported together.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads a variable with a string default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads a variable parsed as an int, falling back to the
// default when unset. A present but unparsable value is an error.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads a variable parsed as a time.Duration
// ("30m", "12h"), falling back to the default when unset.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the connection pool size within sane bounds.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 2 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 2, clamping to 2", varName, size))
		return 2
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// clampBcryptCost keeps the hashing cost within the bounds bcrypt accepts.
// Values outside the range would make bcrypt.GenerateFromPassword fail at
// request time; clamping here surfaces the problem at startup instead.
func clampBcryptCost(cost int, errors *[]string) int {
	if cost < bcrypt.MinCost {
		*errors = append(*errors, fmt.Sprintf("BCRYPT_COST (%d) is below bcrypt minimum %d, clamping", cost, bcrypt.MinCost))
		return bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		*errors = append(*errors, fmt.Sprintf("BCRYPT_COST (%d) is above bcrypt maximum %d, clamping", cost, bcrypt.MaxCost))
		return bcrypt.DefaultCost
	}
	return cost
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Storage selection. The database variables are only required when the
	// postgres driver is in use.
	storageDriver := getOptionalEnv("STORAGE_DRIVER", StoragePostgres)
	if storageDriver != StoragePostgres && storageDriver != StorageMemory {
		errors = append(errors, fmt.Sprintf("invalid STORAGE_DRIVER: expected %q or %q, got %q",
			StoragePostgres, StorageMemory, storageDriver))
	}

	var dbConfig *DatabaseConfig
	if storageDriver == StoragePostgres {
		dbUser := getRequiredEnv("DB_USER", &errors)
		dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
		dbName := getRequiredEnv("DB_NAME", &errors)
		dbHost := getOptionalEnv("DB_HOST", "localhost")
		dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
		poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)

		dbConfig = &DatabaseConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			MaxSize:  poolSize,
		}
	}

	// Auth configuration.
	authConfig := &AuthConfig{
		BcryptCost:    clampBcryptCost(getOptionalEnvInt("BCRYPT_COST", bcrypt.DefaultCost, &errors), &errors),
		SessionTTL:    getOptionalEnvDuration("SESSION_TTL", 12*time.Hour, &errors),
		SessionCookie: getOptionalEnv("SESSION_COOKIE", "BLOGSESSION"),
	}

	// Server configuration. The port stays a string because it is only ever
	// interpolated into a listen address.
	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Database: dbConfig,
		Auth:     authConfig,
		Server:   serverConfig,
		Storage:  &StorageConfig{Driver: storageDriver},
	}, nil
}
