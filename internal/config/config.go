package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceAuth      = "auth"
	ServiceData      = "data"
	ServiceAnalytics = "analytics"
	ServiceGateway   = "gateway"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendDatabase = "database"
	BackendMemory   = "memory"
)

var defaultPorts = map[string]string{
	ServiceAuth:      "8001",
	ServiceData:      "8000",
	ServiceAnalytics: "9000",
	ServiceGateway:   "8080",
}

type Config struct {
	Service  string
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Auth     AuthClientConfig
	Gateway  GatewayConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	Seed            bool
}

type StorageConfig struct {
	Backend string
}

type JWTConfig struct {
	Secret              []byte
	Issuer              string
	AccessTokenDuration time.Duration
}

// AuthClientConfig configures the delegation call made by the data and
// analytics services to the auth service.
type AuthClientConfig struct {
	ServiceURL          string
	VerifyTimeout       time.Duration
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

type GatewayConfig struct {
	AuthServiceURL      string
	DataServiceURL      string
	AnalyticsServiceURL string
}

type SecurityConfig struct {
	BCryptCost int
}

// Load reads the configuration of the named service from the environment.
// A .env file in the working directory is honoured when present.
func Load(service string) *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	config := &Config{
		Service: service,
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", getEnv("PORT", defaultPorts[service])),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "expenses_user"),
			Password:        getEnv("DB_PASSWORD", "expenses_pass"),
			Name:            getEnv("DB_NAME", "expenses_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "./data/expenses.db"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", false),
			Seed:            getBoolEnv("SEED_DATABASE", false),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", defaultBackend(service)),
		},
		JWT: JWTConfig{
			Secret:              []byte(os.Getenv("JWT_SECRET")),
			Issuer:              getEnv("JWT_ISSUER", "expense-auth-service"),
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_TOKEN_DURATION", time.Hour),
		},
		Auth: AuthClientConfig{
			ServiceURL:          strings.TrimRight(getEnv("AUTH_SERVICE_URL", "http://auth-service:8001"), "/"),
			VerifyTimeout:       getDurationEnv("AUTH_VERIFY_TIMEOUT", 3*time.Second),
			BreakerMaxFailures:  getIntEnv("AUTH_BREAKER_MAX_FAILURES", 5),
			BreakerResetTimeout: getDurationEnv("AUTH_BREAKER_RESET_TIMEOUT", 30*time.Second),
		},
		Gateway: GatewayConfig{
			AuthServiceURL:      getEnv("AUTH_SERVICE_URL", "http://auth-service:8001"),
			DataServiceURL:      getEnv("DATA_SERVICE_URL", "http://data-service:8000"),
			AnalyticsServiceURL: getEnv("ANALYTICS_SERVICE_URL", "http://analytics-service:9000"),
		},
		Security: SecurityConfig{
			BCryptCost: getIntEnv("BCRYPT_COST", 10),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	if len(config.JWT.Secret) == 0 && !config.IsProduction() {
		slog.Warn("JWT_SECRET not set, using development secret")
		config.JWT.Secret = []byte("development-secret-change-me")
	}

	return config
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Storage.Backend != BackendDatabase && c.Storage.Backend != BackendMemory {
		problems = append(problems, fmt.Sprintf("invalid STORAGE_BACKEND '%s': must be database or memory", c.Storage.Backend))
	}

	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be postgres or sqlite", c.Database.Driver))
	}

	if c.Service == ServiceAuth && len(c.JWT.Secret) == 0 {
		problems = append(problems, "JWT_SECRET must be set in production environments")
	}

	if (c.Service == ServiceData || c.Service == ServiceAnalytics) && c.Auth.ServiceURL == "" {
		problems = append(problems, "AUTH_SERVICE_URL is required")
	}

	if c.Service == ServiceAnalytics && c.Storage.Backend == BackendMemory {
		problems = append(problems, "analytics service requires STORAGE_BACKEND=database")
	}

	if c.Auth.VerifyTimeout <= 0 {
		problems = append(problems, "AUTH_VERIFY_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres connection string in URL form, as expected by lib/pq
// and golang-migrate.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) UsesDatabase() bool {
	return c.Storage.Backend == BackendDatabase
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

// The auth service keeps its users in memory unless told otherwise.
func defaultBackend(service string) string {
	if service == ServiceAuth {
		return BackendMemory
	}
	return BackendDatabase
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*'")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	slog.Info("CORS allowed origins configured", "origins", origins)
	return origins
}
