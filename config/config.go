package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anprojects-core/lib/storage"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server and the CLI need at startup
type Config struct {
	Port        string      `yaml:"port"`
	GinMode     string      `yaml:"gin_mode"`
	LogLevel    string      `yaml:"log_level"`
	DatabaseURL string      `yaml:"database_url"`
	JWTSecret   string      `yaml:"jwt_secret"`
	Store       StoreConfig `yaml:"store"`
}

// StoreConfig selects the collection store backend
type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:     "8080",
		GinMode:  "release",
		LogLevel: "info",
		Store: StoreConfig{
			Driver: storage.DriverFile,
			Path:   "data",
		},
	}
}

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE (or path, when given) and finally the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := LoadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadConfigFile overlays a YAML config file on cfg
func LoadConfigFile(path string, cfg *Config) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing YAML file: %w", err)
	}
	cfg.DatabaseURL = StripWhitespace(cfg.DatabaseURL)
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = override("PORT", cfg.Port)
	cfg.GinMode = override("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = override("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = override("JWT_SECRET", cfg.JWTSecret)

	if url := DatabaseURLFromEnv(); url != "" {
		cfg.DatabaseURL = url
	}

	cfg.Store.Driver = override("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = override("STORE_PATH", cfg.Store.Path)
	cfg.Store.RedisAddr = override("REDIS_ADDR", cfg.Store.RedisAddr)
	cfg.Store.RedisPassword = override("REDIS_PASSWORD", cfg.Store.RedisPassword)
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.Store.RedisDB = db
	}
}

// override treats an empty variable the same as an unset one
func override(key, current string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return current
}

// DatabaseURLFromEnv returns DATABASE_URL, falling back to NEON_DATABASE_URL.
// Pasted connection strings often carry line breaks, so all whitespace is removed.
func DatabaseURLFromEnv() string {
	url := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(url) == "" {
		url = os.Getenv("NEON_DATABASE_URL")
	}
	return StripWhitespace(url)
}

// StripWhitespace removes every whitespace character from s
func StripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// StoreOptions converts the store section into storage.Options
func (c Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver:        c.Store.Driver,
		Path:          c.Store.Path,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
	}
}

// AuthEnabled reports whether the data API requires bearer tokens
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
