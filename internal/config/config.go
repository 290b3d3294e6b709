// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Replicate   ReplicateConfig
	Shopify     ShopifyConfig
	Generation  GenerationConfig
	Jobs        JobsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URL          string // DATABASE_URL wins over the discrete fields below
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
	ForceReset   bool
	SeedData     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	PublicURL       string
}

type ReplicateConfig struct {
	APIToken    string
	BaseURL     string
	TestingMode bool
}

type ShopifyConfig struct {
	ShopURL     string
	AccessToken string
	APIVersion  string
	Vendor      string
}

type GenerationConfig struct {
	StylesPerKeyword int
	BatchLimit       int
	MinTrendScore    float64
}

type JobsConfig struct {
	AnalyticsRollupCron string
	BatchGenerateCron   string // empty disables recurring generation
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "pod_platform"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
			ForceReset:   getEnvAsBool("FORCE_RESET", false),
			SeedData:     getEnvAsBool("SEED_DATA", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_S3_REGION", "eu-west-2"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "pod-platform-images"),
			PublicURL:       getEnv("AWS_S3_PUBLIC_URL", ""),
		},
		Replicate: ReplicateConfig{
			APIToken:    getEnv("REPLICATE_API_TOKEN", ""),
			BaseURL:     getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
			TestingMode: getEnvAsBool("GENERATION_TESTING_MODE", true),
		},
		Shopify: ShopifyConfig{
			ShopURL:     getEnv("SHOPIFY_SHOP_URL", ""),
			AccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-01"),
			Vendor:      getEnv("SHOPIFY_VENDOR", "POD Platform"),
		},
		Generation: GenerationConfig{
			StylesPerKeyword: getEnvAsInt("STYLES_PER_KEYWORD", 8),
			BatchLimit:       getEnvAsInt("GENERATION_BATCH_LIMIT", 10),
			MinTrendScore:    getEnvAsFloat("GENERATION_MIN_TREND_SCORE", 6.0),
		},
		Jobs: JobsConfig{
			AnalyticsRollupCron: getEnv("ANALYTICS_ROLLUP_CRON", "15 0 * * *"),
			BatchGenerateCron:   getEnv("BATCH_GENERATE_CRON", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" && c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("database credentials are required in production")
	}

	if c.Database.ForceReset && c.Environment == "production" {
		return fmt.Errorf("FORCE_RESET is not allowed in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
