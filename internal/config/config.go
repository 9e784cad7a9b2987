package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup.
type Config struct {
	HTTPPort      string        `yaml:"port"`
	MongoURI      string        `yaml:"mongoUri"`
	MongoDatabase string        `yaml:"mongoDb"`
	MongoTimeout  time.Duration `yaml:"mongoTimeout"`
	RedisAddr     string        `yaml:"redisAddr"`
	JWTSecret     string        `yaml:"jwtSecret"`
	TokenTTL      time.Duration `yaml:"tokenTtl"`
	MinOptions    int           `yaml:"minOptions"` // per non-text question
	CORS          CORSConfig    `yaml:"cors"`
	LogLevel      string        `yaml:"logLevel"`
	Debug         bool          `yaml:"debug"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowedOrigins"`
	AllowedMethods string `yaml:"allowedMethods"`
	AllowedHeaders string `yaml:"allowedHeaders"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		HTTPPort:      "8080",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "surveyhub",
		MongoTimeout:  10 * time.Second,
		RedisAddr:     "localhost:6379",
		TokenTTL:      24 * time.Hour,
		MinOptions:    1,
		CORS: CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowedHeaders: "Content-Type, Authorization",
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and the environment, in increasing order of precedence. A .env
// file in the working directory is loaded first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	cfg.RedisAddr = strings.TrimPrefix(cfg.RedisAddr, "redis://")

	if cfg.JWTSecret == "" {
		if !cfg.Debug {
			return nil, errors.New("JWT_SECRET must be set")
		}
		cfg.JWTSecret = "debug-secret-change-me"
	}
	if cfg.MinOptions < 1 {
		return nil, fmt.Errorf("SURVEY_MIN_OPTIONS must be at least 1, got %d", cfg.MinOptions)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.HTTPPort = getEnv("PORT", c.HTTPPort)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGO_DB", c.MongoDatabase)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.CORS.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = getEnv("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = getEnv("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	var err error
	if c.MongoTimeout, err = getEnvDuration("MONGO_TIMEOUT", c.MongoTimeout); err != nil {
		return err
	}
	if c.TokenTTL, err = getEnvDuration("TOKEN_TTL", c.TokenTTL); err != nil {
		return err
	}
	if v := os.Getenv("SURVEY_MIN_OPTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SURVEY_MIN_OPTIONS: %w", err)
		}
		c.MinOptions = n
	}
	if v := os.Getenv("DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEBUG: %w", err)
		}
		c.Debug = b
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
