// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ratil/internal/middleware"

	"github.com/spf13/viper"
)

const (
	// DefaultDatabaseURL is the local embedded database used when DATABASE_URL is unset.
	DefaultDatabaseURL = "sqlite:///./ratil_app.db"
	// DefaultAdminPassword is the initial password of the bootstrap admin account.
	DefaultAdminPassword = "password123"
	// DefaultCloudinaryUploadURL is the base of the Cloudinary upload API.
	DefaultCloudinaryUploadURL = "https://api.cloudinary.com/v1_1"
	// DefaultContentUploadFolder is the asset-host folder for category content uploads.
	DefaultContentUploadFolder = "ratil_group_content"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                     string  `mapstructure:"PORT"`
	Env                      string  `mapstructure:"APP_ENV"`
	DatabaseURL              string  `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns           int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int     `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int     `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	RedisURL                 string  `mapstructure:"REDIS_URL"`
	AllowedOrigins           string  `mapstructure:"ALLOWED_ORIGINS"`
	BodyLimitMB              int     `mapstructure:"BODY_LIMIT_MB"`
	AdminPassword            string  `mapstructure:"ADMIN_PASSWORD"`
	CategoriesFile           string  `mapstructure:"CATEGORIES_FILE"`
	CloudinaryCloudName      string  `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey         string  `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret      string  `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadURL      string  `mapstructure:"CLOUDINARY_UPLOAD_URL"`
	ContentUploadFolder      string  `mapstructure:"CONTENT_UPLOAD_FOLDER"`
	TracingEnabled           bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter          string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio      float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base config file is optional; environment variables are enough.
	_ = viper.ReadInConfig()

	env := strings.ToLower(strings.TrimSpace(viper.GetString("APP_ENV")))
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		err := viper.MergeInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
			middleware.Logger.Info("Loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
		case !errors.As(err, &notFound):
			return nil, fmt.Errorf("failed to read profile-specific config 'config.%s.yml': %w", env, err)
		}
	}

	// Set default values for development
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_URL", DefaultDatabaseURL)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("BODY_LIMIT_MB", 50)
	viper.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	viper.SetDefault("CATEGORIES_FILE", "")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("CLOUDINARY_UPLOAD_URL", DefaultCloudinaryUploadURL)
	viper.SetDefault("CONTENT_UPLOAD_FOLDER", DefaultContentUploadFolder)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.DatabaseURL = strings.TrimSpace(config.DatabaseURL)
	config.Env = strings.ToLower(strings.TrimSpace(config.Env))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// IsProduction reports whether the configuration targets a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// CloudinaryConfigured reports whether asset-host credentials are present.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.BodyLimitMB <= 0 {
		return errors.New("BODY_LIMIT_MB must be positive")
	}

	if c.IsProduction() {
		if !c.CloudinaryConfigured() {
			return errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required in production")
		}
		if c.AdminPassword == DefaultAdminPassword || c.AdminPassword == "" {
			return errors.New("ADMIN_PASSWORD must be changed from the default value in production")
		}
		if c.AllowedOrigins == "*" {
			middleware.Logger.Warn("ALLOWED_ORIGINS is set to '*' in production; this is insecure")
		}
	} else if !c.CloudinaryConfigured() {
		middleware.Logger.Warn("Cloudinary credentials are not set; file uploads will fail")
	}

	return nil
}
