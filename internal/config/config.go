// Package config loads the files service configuration from the environment.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable through STORAGE_BACKEND
const (
	BackendMock = "mock"
	BackendS3   = "s3"
)

// Config is the full service configuration, resolved once at startup
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects and configures the presign backend
type StorageConfig struct {
	Backend        string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	BucketName     string
	Region         string
	UseSSL         bool
}

// CORSConfig lists origins allowed to call the API from a browser
type CORSConfig struct {
	AllowOrigins []string
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(GetEnvOrDefault("FILES_SERVICE_PORT", "8084"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILES_SERVICE_PORT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Storage: StorageConfig{
			Backend:        strings.ToLower(GetEnvOrDefault("STORAGE_BACKEND", BackendMock)),
			Endpoint:       GetEnvOrDefault("S3_ENDPOINT", ""),
			PublicEndpoint: GetEnvOrDefault("S3_PUBLIC_ENDPOINT", ""),
			AccessKey:      GetEnvOrDefault("S3_ACCESS_KEY", ""),
			SecretKey:      GetEnvOrDefault("S3_SECRET_KEY", ""),
			BucketName:     GetEnvOrDefault("S3_BUCKET_NAME", ""),
			Region:         GetEnvOrDefault("S3_REGION", "us-east-1"),
			UseSSL:         getEnvBool("S3_USE_SSL"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"http://localhost:3000",
				"http://localhost:8080",
			}),
		},
		Log: LogConfig{
			Level:  GetEnvOrDefault("LOG_LEVEL", "info"),
			Format: GetEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that defaults cannot satisfy
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}

	switch c.Storage.Backend {
	case BackendMock:
	case BackendS3:
		var missing []string
		for name, value := range map[string]string{
			"S3_ENDPOINT":    c.Storage.Endpoint,
			"S3_ACCESS_KEY":  c.Storage.AccessKey,
			"S3_SECRET_KEY":  c.Storage.SecretKey,
			"S3_BUCKET_NAME": c.Storage.BucketName,
		} {
			if strings.TrimSpace(value) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return fmt.Errorf("s3 storage backend: missing required settings: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendMock, BackendS3)
	}

	return nil
}
