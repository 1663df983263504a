package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendRedis  = "redis"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Redis     RedisConfig
	Seed      SeedConfig
	Inventory InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if cfg.Store.Backend == StoreBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("BAZARPOS_REDIS_URL or BAZARPOS_REDIS_ADDR is required when the store backend is redis")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAZARPOS_APP_ENV" default:"dev"`
	Port         string `envconfig:"BAZARPOS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BAZARPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAZARPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value backend the session persists through.
type StoreConfig struct {
	Backend  string `envconfig:"BAZARPOS_STORE_BACKEND" default:"file"`
	FilePath string `envconfig:"BAZARPOS_STORE_FILE_PATH" default:"bazarpos.json"`
}

func (s StoreConfig) validate() error {
	switch s.Backend {
	case StoreBackendMemory, StoreBackendFile, StoreBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown store backend %q", s.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"BAZARPOS_REDIS_URL"`
	Address      string        `envconfig:"BAZARPOS_REDIS_ADDR"`
	Password     string        `envconfig:"BAZARPOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAZARPOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAZARPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAZARPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAZARPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAZARPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAZARPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SeedConfig struct {
	Bootstrap bool `envconfig:"BAZARPOS_SEED_BOOTSTRAP" default:"true"`
}

type InventoryConfig struct {
	LowStockThreshold int `envconfig:"BAZARPOS_LOW_STOCK_THRESHOLD" default:"10"`
}
