package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ServerPort         string        `mapstructure:"SERVER_PORT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	GinMode            string        `mapstructure:"GIN_MODE"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MetricsEnabled     bool          `mapstructure:"METRICS_ENABLED"`
}

var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"LOG_LEVEL":            "info",
	"GIN_MODE":             "release",
	"SHUTDOWN_TIMEOUT":     "5s",
	"CORS_ALLOWED_ORIGINS": "*",
	"METRICS_ENABLED":      true,
}

// LoadConfig reads an optional .env file from path, then the environment.
// Environment variables win over the file; unset keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("%w: SERVER_PORT %q", ErrInvalidConfig, c.ServerPort)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: GIN_MODE %q", ErrInvalidConfig, c.GinMode)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT %s", ErrInvalidConfig, c.ShutdownTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS. An empty result or "*" allows every origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
