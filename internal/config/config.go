package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultJWTSecret     = "your-secret-key-change-in-production"
	defaultSessionSecret = "your-session-secret-change-in-production"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseDriver   string `mapstructure:"DB_DRIVER"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// JWT configuration
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTTTL      time.Duration `mapstructure:"JWT_TTL"`
	AdminEmails []string      `mapstructure:"ADMIN_EMAILS"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Artifact storage
	StorageType       string `mapstructure:"STORAGE_TYPE"`
	StorageRoot       string `mapstructure:"STORAGE_ROOT"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Prefix          string `mapstructure:"S3_PREFIX"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `mapstructure:"S3_USE_PATH_STYLE"`

	// Conversion pipeline
	WorkDir          string        `mapstructure:"WORK_DIR"`
	IfcConvertPath   string        `mapstructure:"IFCCONVERT_PATH"`
	IfcConvertArgs   []string      `mapstructure:"IFCCONVERT_ARGS"`
	ConverterTimeout time.Duration `mapstructure:"CONVERTER_TIMEOUT"`
	MeshFormat       string        `mapstructure:"MESH_FORMAT"`
	MaxUploadBytes   int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	DefaultReusable  bool          `mapstructure:"DEFAULT_REUSABLE"`

	// Page front end
	WebPort       string `mapstructure:"WEB_PORT"`
	APIBaseURL    string `mapstructure:"API_BASE_URL"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set default values
	setDefaults(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.normalize()

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ifc_reuse")
	v.SetDefault("DB_SSL_MODE", "disable")

	// JWT defaults
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ADMIN_EMAILS", []string{})

	// CORS defaults
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Storage defaults
	v.SetDefault("STORAGE_TYPE", "filesystem")
	v.SetDefault("STORAGE_ROOT", "./data")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "")
	v.SetDefault("S3_REGION", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)

	// Pipeline defaults
	v.SetDefault("WORK_DIR", "./data/tmp")
	v.SetDefault("IFCCONVERT_PATH", "IfcConvert")
	v.SetDefault("IFCCONVERT_ARGS", []string{})
	v.SetDefault("CONVERTER_TIMEOUT", "2m")
	v.SetDefault("MESH_FORMAT", "glb")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("DEFAULT_REUSABLE", false)

	// Front end defaults
	v.SetDefault("WEB_PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
}

// normalize splits comma separated list values coming from the environment
// and lower-cases enumerated settings.
func (c *Config) normalize() {
	c.AdminEmails = splitList(c.AdminEmails)
	c.AllowedOrigins = splitList(c.AllowedOrigins)
	c.IfcConvertArgs = splitFields(c.IfcConvertArgs)
	for i, e := range c.AdminEmails {
		c.AdminEmails[i] = strings.ToLower(e)
	}
	c.DatabaseDriver = strings.ToLower(c.DatabaseDriver)
	c.StorageType = strings.ToLower(c.StorageType)
	c.MeshFormat = strings.ToLower(strings.TrimPrefix(c.MeshFormat, "."))
}

func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func splitFields(in []string) []string {
	out := []string{}
	for _, item := range in {
		out = append(out, strings.Fields(item)...)
	}
	return out
}

func buildDatabaseURL(config *Config) string {
	if config.DatabaseDriver == "sqlite" {
		return "ifc_reuse.db"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.SessionSecret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
	}

	switch config.DatabaseDriver {
	case "postgres":
		if config.DatabaseName == "" && config.DatabaseURL == "" {
			return fmt.Errorf("database name is required")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", config.DatabaseDriver)
	}

	switch config.StorageType {
	case "filesystem":
		if config.StorageRoot == "" {
			return fmt.Errorf("STORAGE_ROOT is required for filesystem storage")
		}
	case "s3":
		if config.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", config.StorageType)
	}

	if config.MeshFormat != "glb" && config.MeshFormat != "obj" {
		return fmt.Errorf("MESH_FORMAT must be glb or obj, got %q", config.MeshFormat)
	}
	if config.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if config.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	return nil
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
