// Package config provides configuration management for the finstarter service.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends understood by STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// DatabaseConfig holds the connection settings for the credential store backend.
type DatabaseConfig struct {
	Backend       string // postgres, mongo or memory
	URL           string // Postgres connection string
	MaxConns      int
	MongoURI      string
	MongoDatabase string
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret         string        // Secret key for signing session tokens
	SessionTTL        time.Duration // Lifetime of a session token and its cookie
	CookieName        string
	SecureCookies     bool // Set the Secure attribute; true in production
	BcryptCost        int
	PasswordMinLength int
	ProtectedPrefix   string // Paths under this prefix require a session
	LoginPath         string // Where the route guard sends unauthenticated visitors
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
}

// IsProduction reports whether APP_ENV names the production environment.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set or empty.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "2h".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Server Configuration
	serverConfig := &ServerConfig{
		Port:               getOptionalEnv("PORT", "8080"),
		Env:                getOptionalEnv("APP_ENV", "development"),
		LogLevel:           getOptionalEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	// Database Configuration. Only the selected backend's settings are required.
	dbConfig := &DatabaseConfig{
		Backend:       strings.ToLower(getOptionalEnv("STORE_BACKEND", BackendPostgres)),
		MaxConns:      getOptionalEnvInt("DB_MAX_CONNS", 10, &errors),
		MongoDatabase: getOptionalEnv("MONGO_DATABASE", "finstarter"),
	}
	switch dbConfig.Backend {
	case BackendPostgres:
		dbConfig.URL = getRequiredEnv("DATABASE_URL", &errors)
	case BackendMongo:
		dbConfig.MongoURI = getRequiredEnv("MONGO_URI", &errors)
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid value for STORE_BACKEND: %q (want postgres, mongo or memory)", dbConfig.Backend))
	}
	if dbConfig.MaxConns < 1 || dbConfig.MaxConns > math.MaxInt32 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and %d, got %d", math.MaxInt32, dbConfig.MaxConns))
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:         getRequiredEnv("JWT_SECRET", &errors),
		SessionTTL:        getOptionalEnvDuration("SESSION_TTL", 2*time.Hour, &errors),
		CookieName:        getOptionalEnv("SESSION_COOKIE_NAME", "token"),
		SecureCookies:     serverConfig.IsProduction(),
		BcryptCost:        getOptionalEnvInt("BCRYPT_COST", 12, &errors),
		PasswordMinLength: getOptionalEnvInt("PASSWORD_MIN_LENGTH", 12, &errors),
		ProtectedPrefix:   strings.TrimSuffix(getOptionalEnv("PROTECTED_PREFIX", "/dashboard"), "/"),
		LoginPath:         getOptionalEnv("LOGIN_PATH", "/login"),
	}
	if authConfig.SessionTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", authConfig.SessionTTL))
	}
	if authConfig.BcryptCost < 10 || authConfig.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between 10 and 31, got %d", authConfig.BcryptCost))
	}
	if authConfig.PasswordMinLength < 8 || authConfig.PasswordMinLength > 72 {
		errors = append(errors, fmt.Sprintf("PASSWORD_MIN_LENGTH must be between 8 and 72, got %d", authConfig.PasswordMinLength))
	}
	if !strings.HasPrefix(authConfig.ProtectedPrefix, "/") {
		errors = append(errors, fmt.Sprintf("PROTECTED_PREFIX must start with '/', got %q", authConfig.ProtectedPrefix))
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Database: dbConfig,
		Auth:     authConfig,
		Server:   serverConfig,
	}, nil
}
