package config

import (
	"fmt"
	"time"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis_service"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress returns host:port
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // sqlite, postgres
	Path        string `mapstructure:"path"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// GetAddress returns the Redis address
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig JWT configuration
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration returns the token lifetime
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// AdminConfig seeded administrator account
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// CORSConfig CORS configuration
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// StorageConfig blob storage for uploaded profile images
type StorageConfig struct {
	Driver    string   `mapstructure:"driver"` // local, s3
	LocalPath string   `mapstructure:"local_path"`
	PublicURL string   `mapstructure:"public_url"`
	MaxSizeMB int      `mapstructure:"max_size_mb"`
	S3        S3Config `mapstructure:"s3"`
}

// MaxSizeBytes returns the upload size limit in bytes
func (s *StorageConfig) MaxSizeBytes() int64 {
	return int64(s.MaxSizeMB) << 20
}

// S3Config S3-compatible (MinIO / R2) storage
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

// RateLimitConfig limits for login/register attempts per client IP
type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxAttempts   int  `mapstructure:"max_attempts"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

// GetWindow returns the limiter window
func (r *RateLimitConfig) GetWindow() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LogConfig logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}
