package config

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port          string
	BindAddress   string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBConnTimeout time.Duration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheEnabled  bool
	CacheTTL      time.Duration
	CORSOrigin    string
	RevealAnswers bool
	GinMode       string
}

// Load reads configuration from the environment, an optional .env file and
// an optional config.yaml. Environment variables win over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Failed to read config file: %v", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("BIND_ADDRESS", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "topicquiz")
	v.SetDefault("DB_PASSWORD", "topicquiz")
	v.SetDefault("DB_NAME", "topicquiz")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("QUIZ_REVEAL_ANSWERS", false)
	v.SetDefault("GIN_MODE", "debug")
}

func fromViper(v *viper.Viper) *Config {
	connTimeout := v.GetDuration("DB_CONNECT_TIMEOUT")
	if connTimeout <= 0 {
		connTimeout = 5 * time.Second
	}

	return &Config{
		Port:          v.GetString("PORT"),
		BindAddress:   v.GetString("BIND_ADDRESS"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBConnTimeout: connTimeout,
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		CacheEnabled:  v.GetBool("CACHE_ENABLED"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		CORSOrigin:    v.GetString("CORS_ORIGIN"),
		RevealAnswers: v.GetBool("QUIZ_REVEAL_ANSWERS"),
		GinMode:       v.GetString("GIN_MODE"),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}

// DSN returns DATABASE_URL when set, otherwise builds a key/value DSN from
// the individual DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC connect_timeout=%d",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, int(c.DBConnTimeout.Seconds()))
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitRedis returns nil when caching is disabled.
func InitRedis(cfg *Config) *redis.Client {
	if !cfg.CacheEnabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return client
}
