// Package config loads the reader's configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Content    ContentConfig    `yaml:"content"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ContentConfig points at the pre-generated static content.
type ContentConfig struct {
	TextDir        string `yaml:"text_dir"        env:"CONTENT_TEXT_DIR"        env-default:"data/processed"`
	TranslationDir string `yaml:"translation_dir" env:"CONTENT_TRANSLATION_DIR" env-default:"data/translations"`
	LecturesIndex  string `yaml:"lectures_index"  env:"CONTENT_LECTURES_INDEX"  env-default:"data/lectures_index.json"`
	PublicDir      string `yaml:"public_dir"      env:"CONTENT_PUBLIC_DIR"      env-default:"public"`
	QuranIndex     string `yaml:"quran_index"     env:"CONTENT_QURAN_INDEX"     env-default:"public/quran_index.json"`
	QuranEnglish   string `yaml:"quran_english"   env:"CONTENT_QURAN_ENGLISH"   env-default:"public/quran-en.json"`
}

// DictionaryConfig selects the dictionary backend.
//
// Mode is one of "sharded", "monolithic" or "sqlite".
type DictionaryConfig struct {
	Mode         string `yaml:"mode"          env:"DICT_MODE"          env-default:"sharded"`
	ShardDir     string `yaml:"shard_dir"     env:"DICT_SHARD_DIR"     env-default:"public/dictionary"`
	IndexFile    string `yaml:"index_file"    env:"DICT_INDEX_FILE"    env-default:"public/dictionary_index.json"`
	DatabasePath string `yaml:"database_path" env:"DICT_DATABASE_PATH" env-default:"ihya.db"`
	CacheShards  int    `yaml:"cache_shards"  env:"DICT_CACHE_SHARDS"  env-default:"6"`
	BundleURL    string `yaml:"bundle_url"    env:"DICT_BUNDLE_URL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// Dictionary backend modes.
const (
	ModeSharded    = "sharded"
	ModeMonolithic = "monolithic"
	ModeSQLite     = "sqlite"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from CONFIG_PATH (fallback "./config.yaml").
// A missing default file is not an error; a missing explicit file is.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit path. An empty path means "./config.yaml" if it exists.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate performs rule checks on the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	c.Dictionary.Mode = strings.ToLower(strings.TrimSpace(c.Dictionary.Mode))
	switch c.Dictionary.Mode {
	case ModeSharded:
		if c.Dictionary.ShardDir == "" {
			return fmt.Errorf("dictionary.shard_dir is required in sharded mode")
		}
	case ModeMonolithic:
		if c.Dictionary.IndexFile == "" {
			return fmt.Errorf("dictionary.index_file is required in monolithic mode")
		}
	case ModeSQLite:
		if c.Dictionary.DatabasePath == "" {
			return fmt.Errorf("dictionary.database_path is required in sqlite mode")
		}
	default:
		return fmt.Errorf("dictionary.mode must be one of sharded, monolithic, sqlite (got %q)", c.Dictionary.Mode)
	}
	if c.Dictionary.CacheShards < 1 {
		return fmt.Errorf("dictionary.cache_shards must be >= 1 (got %d)", c.Dictionary.CacheShards)
	}
	return nil
}
