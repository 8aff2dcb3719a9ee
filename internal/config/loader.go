package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefix for environment overrides, e.g. TASKAPI_JWT_SECRET_KEY
const EnvPrefix = "TASKAPI"

var (
	globalConfig *Config
	once         sync.Once
	configPath   string
)

// LoadConfig loads the configuration file once and caches it
func LoadConfig(configFile string) (*Config, error) {
	var err error
	var cfg *Config

	once.Do(func() {
		cfg, err = loadConfigFromFile(configFile)
		if err == nil {
			globalConfig = cfg
		}
		configPath = configFile
	})

	return globalConfig, err
}

// loadConfigFromFile reads .env, the YAML file and environment overrides
func loadConfigFromFile(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys makes secrets overridable even when absent from the file.
// AutomaticEnv only applies to keys viper already knows about.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"jwt.secret_key",
		"admin.email",
		"admin.password",
		"database.dsn",
		"redis_service.password",
		"storage.s3.access_key",
		"storage.s3.secret_key",
	} {
		_ = v.BindEnv(key)
	}
}

// setDefaults fills unset values
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./database/app.db"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = "HS256"
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 1440
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "Administrator"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@example.com"
	}
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"Authorization", "Content-Type"}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "local"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./storage/public"
	}
	if cfg.Storage.MaxSizeMB == 0 {
		cfg.Storage.MaxSizeMB = 2
	}
	if cfg.RateLimit.MaxAttempts == 0 {
		cfg.RateLimit.MaxAttempts = 10
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
		if cfg.Server.ProductionMode {
			cfg.Log.Format = "json"
		}
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = 100
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 5
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = 30
	}
}

// validateConfig rejects unusable configurations
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt secret key must not be empty")
	}

	if cfg.Admin.Password == "" {
		return fmt.Errorf("admin password must not be empty")
	}

	switch cfg.Database.Driver {
	case "sqlite":
		dbDir := filepath.Dir(cfg.Database.Path)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	switch cfg.Storage.Driver {
	case "local":
	case "s3":
		if cfg.Storage.S3.Endpoint == "" || cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 storage requires endpoint and bucket")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}

	return nil
}

// ReloadConfig re-reads the configuration from the last used path
func ReloadConfig() (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path not set")
	}

	cfg, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return cfg, nil
}
