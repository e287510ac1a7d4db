package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvTest is the only environment allowed to run without JWT_SECRET.
const EnvTest = "test"

const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	// DotEnvLoaded reports whether a .env file was read. Load runs before
	// the logger exists, so the caller logs this.
	DotEnvLoaded bool

	Environment string
	APIPort     string
	JWTKey      []byte
	JWTExp      time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StoreBackend string
	StoreTimeout time.Duration
	BcryptCost   int
	LoginURL     string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	dotEnvErr := godotenv.Load()

	cfg := &Config{
		DotEnvLoaded:  dotEnvErr == nil,
		Environment:   getEnv("APP_ENV", "development"),
		APIPort:       getEnv("API_PORT", "8080"),
		JWTExp:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "signup_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		StoreBackend:  getEnv("STORE_BACKEND", StoreBackendPostgres),
		StoreTimeout:  time.Duration(getEnvAsInt("STORE_TIMEOUT_MS", 5000)) * time.Millisecond,
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),
		LoginURL:      getEnv("LOGIN_URL", "/login"),
	}

	jwtKey, err := loadJWTKey(cfg.Environment)
	if err != nil {
		return nil, err
	}
	cfg.JWTKey = jwtKey

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	switch cfg.StoreBackend {
	case StoreBackendPostgres, StoreBackendRedis, StoreBackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT_MS must be positive")
	}

	return cfg, nil
}

// loadJWTKey requires JWT_SECRET outside tests. A known fallback key would
// let anyone mint an admin token. Tests without a secret get a random key.
func loadJWTKey(env string) ([]byte, error) {
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		return []byte(secret), nil
	}
	if env != EnvTest {
		return nil, fmt.Errorf("%w (APP_ENV=%q)", ErrMissingJWTSecret, env)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate test JWT key: %w", err)
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
