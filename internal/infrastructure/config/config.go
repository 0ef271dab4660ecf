package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Session  SessionConfig  `mapstructure:"session"`
	Content  ContentConfig  `mapstructure:"content"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration. Driver is one of memory,
// sqlite3 or postgres.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeminiConfig holds the generative AI client configuration.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	TextModel   string        `mapstructure:"text_model"`
	SpeechModel string        `mapstructure:"speech_model"`
	Voice       string        `mapstructure:"voice"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// AudioConfig controls the synthesized speech cache.
type AudioConfig struct {
	Cache            string        `mapstructure:"cache"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	TTL              time.Duration `mapstructure:"ttl"`
	SynthTimeout     time.Duration `mapstructure:"synth_timeout"`
	MaxUploadBytes   int64         `mapstructure:"max_upload_bytes"`
	MaxMemoryEntries int           `mapstructure:"max_memory_entries"`
}

// SessionConfig controls practice session lifetime.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// ContentConfig controls the content store.
type ContentConfig struct {
	Seed bool `mapstructure:"seed"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)

	viper.SetDefault("database.driver", "memory")
	viper.SetDefault("database.path", "lingoguru.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "lingoguru")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_conns", 10)
	viper.SetDefault("database.log_sql", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.text_model", "gemini-3-flash-preview")
	viper.SetDefault("gemini.speech_model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("gemini.voice", "Kore")
	viper.SetDefault("gemini.timeout", 60*time.Second)

	viper.SetDefault("audio.cache", "memory")
	viper.SetDefault("audio.redis_addr", "localhost:6379")
	viper.SetDefault("audio.redis_password", "")
	viper.SetDefault("audio.redis_db", 0)
	viper.SetDefault("audio.ttl", 24*time.Hour)
	viper.SetDefault("audio.synth_timeout", 30*time.Second)
	viper.SetDefault("audio.max_upload_bytes", 5<<20)
	viper.SetDefault("audio.max_memory_entries", 512)

	viper.SetDefault("session.ttl", 30*time.Minute)
	viper.SetDefault("session.sweep_interval", time.Minute)

	viper.SetDefault("content.seed", true)
}

// DatabaseDriver returns the normalized driver name.
func (c *Config) DatabaseDriver() string {
	switch d := strings.ToLower(strings.TrimSpace(c.Database.Driver)); d {
	case "", "memory":
		return "memory"
	case "sqlite", "sqlite3":
		return "sqlite3"
	case "postgres", "postgresql", "pgx":
		return "postgres"
	default:
		return d
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// DatabaseDSN returns the data source name for the configured driver.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseDriver() == "sqlite3" {
		return c.Database.Path
	}
	return c.DatabaseURL()
}

// HTTPAddr returns the listen address of the HTTP server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
