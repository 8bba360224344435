package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
	Rent      RentConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// Origins splits the comma separated origin list
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	SessionSweepCron string
	SessionIdleTTL   time.Duration
}

// Backend modes for the rent screen
const (
	RentBackendLocal  = "local"
	RentBackendRemote = "remote"
)

// RentConfig holds rent screen configuration
type RentConfig struct {
	Backend            string
	APIBaseURL         string
	APITimeout         time.Duration
	DefaultRowsPerPage int
	ReceiptIssuer      string
	// Timezone names the zone rent is billed in
	Timezone string
	Location *time.Location
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "rent_bo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000"),
		},
		Scheduler: SchedulerConfig{
			SessionSweepCron: getEnv("SESSION_SWEEP_CRON", "0 */5 * * * *"),
			SessionIdleTTL:   getEnvAsDuration("SESSION_IDLE_TTL", 30*time.Minute),
		},
		Rent: RentConfig{
			Backend:            strings.ToLower(getEnv("RENT_BACKEND", RentBackendLocal)),
			APIBaseURL:         getEnv("RENT_API_BASE_URL", ""),
			APITimeout:         getEnvAsDuration("RENT_API_TIMEOUT", 15*time.Second),
			DefaultRowsPerPage: getEnvAsInt("RENT_DEFAULT_ROWS_PER_PAGE", 5),
			ReceiptIssuer:      getEnv("RENT_RECEIPT_ISSUER", "Rent Back Office"),
			Timezone:           getEnv("RENT_TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Rent.Backend {
	case RentBackendLocal:
	case RentBackendRemote:
		if c.Rent.APIBaseURL == "" {
			return fmt.Errorf("RENT_API_BASE_URL is required when RENT_BACKEND=%s", RentBackendRemote)
		}
	default:
		return fmt.Errorf("unknown RENT_BACKEND %q", c.Rent.Backend)
	}
	if c.Scheduler.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}
	loc, err := time.LoadLocation(c.Rent.Timezone)
	if err != nil {
		return fmt.Errorf("invalid RENT_TIMEZONE %q: %w", c.Rent.Timezone, err)
	}
	c.Rent.Location = loc
	return nil
}

// GetDSN returns PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsDuration parses values like "30m" or "15s"
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
