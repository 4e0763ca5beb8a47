package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	// Server
	ServerPort  string
	GinMode     string
	CORSOrigins []string

	// Storage
	StoreDriver string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BucketName       string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// Content
	WorkingSetSize     int
	TrendingLimit      int
	LatestLimit        int
	RelatedLimit       int
	SearchLimit        int
	MaxPageSize        int
	CacheTTL           time.Duration
	ViewIncrementTTL   time.Duration
	RateLimitPerMinute int

	// API client
	APIBaseURL string
	APITimeout time.Duration
	LoginURL   string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		CORSOrigins: splitCSV(v.GetString("CORS_ORIGINS")),

		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AWSEndpoint:        v.GetString("AWS_ENDPOINT"),
		S3UseSSL:           v.GetString("S3_USE_SSL"),
		S3BucketName:       v.GetString("S3_BUCKET_NAME"),

		RabbitMQHost:     v.GetString("RABBITMQ_HOST"),
		RabbitMQPort:     v.GetString("RABBITMQ_PORT"),
		RabbitMQUser:     v.GetString("RABBITMQ_USER"),
		RabbitMQPassword: v.GetString("RABBITMQ_PASSWORD"),

		WorkingSetSize:     v.GetInt("WORKING_SET_SIZE"),
		TrendingLimit:      v.GetInt("TRENDING_LIMIT"),
		LatestLimit:        v.GetInt("LATEST_LIMIT"),
		RelatedLimit:       v.GetInt("RELATED_LIMIT"),
		SearchLimit:        v.GetInt("SEARCH_LIMIT"),
		MaxPageSize:        v.GetInt("MAX_PAGE_SIZE"),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		ViewIncrementTTL:   v.GetDuration("VIEW_INCREMENT_TIMEOUT"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),

		APIBaseURL: v.GetString("API_BASE_URL"),
		APITimeout: v.GetDuration("API_TIMEOUT"),
		LoginURL:   v.GetString("LOGIN_URL"),
	}

	if config.StoreDriver != StoreDriverPostgres && config.StoreDriver != StoreDriverMemory {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.StoreDriver)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "newsdesk")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	v.SetDefault("JWT_TTL", 24*time.Hour)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_ENDPOINT", "")
	v.SetDefault("S3_USE_SSL", "true")
	v.SetDefault("S3_BUCKET_NAME", "newsdesk-images")

	v.SetDefault("RABBITMQ_HOST", "localhost")
	v.SetDefault("RABBITMQ_PORT", "5672")
	v.SetDefault("RABBITMQ_USER", "guest")
	v.SetDefault("RABBITMQ_PASSWORD", "guest")

	v.SetDefault("WORKING_SET_SIZE", 200)
	v.SetDefault("TRENDING_LIMIT", 5)
	v.SetDefault("LATEST_LIMIT", 10)
	v.SetDefault("RELATED_LIMIT", 4)
	v.SetDefault("SEARCH_LIMIT", 200)
	v.SetDefault("MAX_PAGE_SIZE", 200)
	v.SetDefault("CACHE_TTL", 30*time.Second)
	v.SetDefault("VIEW_INCREMENT_TIMEOUT", 5*time.Second)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("API_TIMEOUT", 12*time.Second)
	v.SetDefault("LOGIN_URL", "/login")
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
