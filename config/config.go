package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Signing SigningConfig
	Session SessionConfig
	Redis   RedisConfig
	S3      S3Config
	Log     LogConfig
}

type APIConfig struct {
	BaseURL string
	Version string
	Timeout time.Duration
}

type SigningConfig struct {
	// EndpointURL is the external pre-signed URL issuing endpoint.
	// When empty and AWS credentials are present, URLs are signed directly.
	EndpointURL string
}

type SessionConfig struct {
	FilePath string // serialized session location between runs
	Backend  string // "file" (default) or "redis"
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

type LogConfig struct {
	Level  string // debug, info, warn, error, fatal
	Format string // json, console
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("SHOPIT_API_URL", "http://localhost:3001"),
			Version: getEnv("SHOPIT_API_VERSION", "v1"),
			Timeout: parseDuration(getEnv("SHOPIT_API_TIMEOUT", "5s")),
		},
		Signing: SigningConfig{
			EndpointURL: getEnv("SHOPIT_SIGNING_URL", ""),
		},
		Session: SessionConfig{
			FilePath: getEnv("SHOPIT_SESSION_FILE", defaultSessionFile()),
			Backend:  getEnv("SHOPIT_SESSION_BACKEND", "file"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", "shopit-uploads"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	return config, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shopit-session.json"
	}
	return filepath.Join(dir, "shopit", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 5s", s)
		return 5 * time.Second
	}
	return duration
}
