package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	Classifier ClassifierConfig
	RateLimit  RateLimitConfig
	JWT        JWTConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ClassifierConfig configures the remote spam-classification API client.
type ClassifierConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5020")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "modgate")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("CLASSIFIER_TIMEOUT", 15)
	viper.SetDefault("CLASSIFIER_RPS", 5.0)
	viper.SetDefault("CLASSIFIER_BURST", 10)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("JWT_TTL", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Classifier: ClassifierConfig{
			BaseURL: getEnvOrPanic("CLASSIFIER_URL"),
			APIKey:  os.Getenv("CLASSIFIER_API_KEY"),
			Timeout: time.Duration(viper.GetInt("CLASSIFIER_TIMEOUT")) * time.Second,
			RPS:     viper.GetFloat64("CLASSIFIER_RPS"),
			Burst:   viper.GetInt("CLASSIFIER_BURST"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    time.Duration(viper.GetInt("JWT_TTL")) * time.Minute,
		},
	}

	// Basic validation
	if cfg.Classifier.APIKey == "" {
		log.Println("WARNING: CLASSIFIER_API_KEY is not set; the remote API will reject calls in production")
	}
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; moderator override endpoint will be unprotected")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
