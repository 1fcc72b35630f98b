package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: sqlite or mysql
	DBPath     string // SQLite database file
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	DBLog      bool   // Enable GORM query logging
	JWTSecret  string // JWT secret key
	JWTTTL     time.Duration
	RedisAddr  string // Redis server address, empty disables the cache
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	CacheTTL   time.Duration
	IsProd     bool   // Is production environment
	LogLevel   string // logrus level name
	BcryptCost int    // bcrypt work factor

	AccountNumberAttempts int // Bound on account number generation retries

	BootstrapAdminUser     string // Username provisioned when no user exists
	BootstrapAdminPassword string // Well-known password, rotation is forced on first login

	DashboardInterval time.Duration // Refresh interval of the live dashboard
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "shxdw_bank.db"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		DBLog:      os.Getenv("DB_LOG") == "true",
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTTTL:     time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    getInt("REDIS_DB", 0),
		CacheTTL:   time.Duration(getInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		IsProd:     os.Getenv("IS_PROD") == "true",
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		BcryptCost: getInt("BCRYPT_COST", 12),

		AccountNumberAttempts: getInt("ACCOUNT_NUMBER_ATTEMPTS", 16),

		BootstrapAdminUser:     getEnv("BOOTSTRAP_ADMIN_USER", "admin"),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "admin"),

		DashboardInterval: time.Duration(getInt("DASHBOARD_INTERVAL_MS", 500)) * time.Millisecond,
	}
}

// getEnv returns the variable or def when it is unset or empty
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt parses an integer variable, falling back to def on absence or garbage
func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
