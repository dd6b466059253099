package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI            string
	Port                string
	DBName              string
	AdminsCollection    string
	OverridesCollection string
	RequestsCollection  string
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	PermissionCacheSize int
	PermissionCacheTTL  time.Duration
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		MongoURI:            mongoURI,
		Port:                port,
		DBName:              getEnv("DB_NAME", "governance_db"),
		AdminsCollection:    getEnv("COLLECTION_ADMINS", "admins"),
		OverridesCollection: getEnv("COLLECTION_OVERRIDES", "permission_overrides"),
		RequestsCollection:  getEnv("COLLECTION_REQUESTS", "approval_requests"),
		ReadTimeout:         getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:        getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		PermissionCacheSize: getEnvInt("PERMISSION_CACHE_SIZE", 1024),
		PermissionCacheTTL:  getEnvDuration("PERMISSION_CACHE_TTL", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
