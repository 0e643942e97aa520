package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuditStorePostgres = "postgres"
	AuditStoreMongo    = "mongo"
)

type DatabaseConfig struct {
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	AutoMigrate bool
	MaxRetries  int
}

type Config struct {
	Port          string
	Database      DatabaseConfig
	RedisAddr     string
	KafkaBroker   string
	JWTSecret     string
	AuditStore    string
	MongoURI      string
	MongoDatabase string
	DirectoryTTL  time.Duration
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env not loaded (%v), using process environment", err)
	}

	return &Config{
		Port: getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "elra"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getBool("DB_AUTO_MIGRATE", false),
			MaxRetries:  getInt("DB_MAX_RETRIES", 5),
		},
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		KafkaBroker:   getEnv("KAFKA_BROKER", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AuditStore:    getEnv("AUDIT_STORE", AuditStorePostgres),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "elra"),
		DirectoryTTL:  getDuration("DIRECTORY_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
