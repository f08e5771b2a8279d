package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Mode    string        `mapstructure:"mode"`
	Bank    BankConfig    `mapstructure:"bank"`
	Storage StorageConfig `mapstructure:"storage"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Server  ServerConfig  `mapstructure:"server"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
}

// BankConfig points at the question bank document: a file path or an http(s) URL.
type BankConfig struct {
	Source string `mapstructure:"source"`
}

// StorageConfig selects the local key-value backend: "sqlite", "redis" or "memory".
type StorageConfig struct {
	Driver     string      `mapstructure:"driver"`
	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SyncConfig struct {
	APIBaseURL string `mapstructure:"api_base_url"`
	// PagesURL is where the site is hosted; the target repository is derived from it.
	PagesURL string `mapstructure:"pages_url"`
	// StrictLookup refuses to write when the existing file could not be read
	// for a reason other than "not found".
	StrictLookup   bool `mapstructure:"strict_lookup"`
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
}

func (s SyncConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type ServerConfig struct {
	Addr              string `mapstructure:"addr"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout"`
}

type QuizConfig struct {
	DefaultCount int `mapstructure:"default_count"`
}

var validDrivers = map[string]bool{"sqlite": true, "redis": true, "memory": true}

// Load reads an optional .env file, the optional config file at configPath and
// APDOJO_* environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	vip := viper.New()

	vip.SetDefault("mode", "development")
	vip.SetDefault("bank.source", "data/ap_questions.json")
	vip.SetDefault("storage.driver", "sqlite")
	vip.SetDefault("storage.sqlite_path", "ap-dojo.db")
	vip.SetDefault("storage.redis.addr", "127.0.0.1:6379")
	vip.SetDefault("storage.redis.key_prefix", "apdojo:")
	vip.SetDefault("sync.api_base_url", "https://api.github.com")
	vip.SetDefault("sync.timeout_seconds", 15)
	vip.SetDefault("server.addr", ":8080")
	vip.SetDefault("server.read_header_timeout", 5)
	vip.SetDefault("quiz.default_count", 10)

	vip.BindEnv("mode", "APDOJO_MODE")
	vip.BindEnv("bank.source", "APDOJO_BANK_SOURCE")
	vip.BindEnv("storage.driver", "APDOJO_STORAGE_DRIVER")
	vip.BindEnv("storage.sqlite_path", "APDOJO_SQLITE_PATH")
	vip.BindEnv("storage.redis.addr", "APDOJO_REDIS_ADDR")
	vip.BindEnv("storage.redis.password", "APDOJO_REDIS_PASSWORD")
	vip.BindEnv("storage.redis.db", "APDOJO_REDIS_DB")
	vip.BindEnv("storage.redis.key_prefix", "APDOJO_REDIS_KEY_PREFIX")
	vip.BindEnv("sync.api_base_url", "APDOJO_SYNC_API_BASE_URL")
	vip.BindEnv("sync.pages_url", "APDOJO_PAGES_URL")
	vip.BindEnv("sync.strict_lookup", "APDOJO_SYNC_STRICT_LOOKUP")
	vip.BindEnv("sync.timeout_seconds", "APDOJO_SYNC_TIMEOUT_SECONDS")
	vip.BindEnv("server.addr", "APDOJO_ADDR")
	vip.BindEnv("quiz.default_count", "APDOJO_DEFAULT_COUNT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if !validDrivers[cfg.Storage.Driver] {
		return nil, fmt.Errorf("unknown storage driver %q (want sqlite, redis or memory)", cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Bank.Source) == "" {
		return nil, fmt.Errorf("bank.source is required (check APDOJO_BANK_SOURCE)")
	}
	if cfg.Sync.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("sync.timeout_seconds must be positive")
	}

	return &cfg, nil
}
