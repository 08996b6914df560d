package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	Asana       AsanaConfig     `toml:"asana"`
	Email       EmailConfig     `toml:"email"`
	Webhook     WebhookConfig   `toml:"webhook"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Storage     StorageConfig   `toml:"storage"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// AsanaConfig holds access to the upstream task-tracking platform
type AsanaConfig struct {
	BaseURL            string  `toml:"base_url" validate:"required,url"`
	AccessToken        string  `toml:"access_token"`
	RepairProjectGID   string  `toml:"repair_project_gid"`   // Project that receives repair-request form tasks
	SubtasksProjectGID string  `toml:"subtasks_project_gid"` // Project for generated checklist subtasks (defaults to repair project)
	RequestTimeout     string  `toml:"request_timeout"`      // e.g., "30s"
	RateLimit          float64 `toml:"rate_limit"`           // Requests per second against the upstream API
}

// EmailConfig holds SMTP settings for outbound notifications
type EmailConfig struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port" validate:"gte=0,lte=65535"`
	Username         string `toml:"username"`
	Password         string `toml:"password"`
	From             string `toml:"from"`
	FromName         string `toml:"from_name"`
	UseTLS           bool   `toml:"use_tls"`
	DistributionList string `toml:"distribution_list"` // Recipient for repair notifications
}

// WebhookConfig holds settings for webhook registration
type WebhookConfig struct {
	TargetURL string `toml:"target_url"` // Public URL the upstream platform delivers to, e.g. https://host/webhook
}

// SchedulerConfig controls the periodic sweep of recently modified tasks
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
	Lookback string `toml:"lookback"` // How far back the sweep queries, e.g. "24h"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration for the delivery log
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// NewDefaultConfig returns a config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Asana: AsanaConfig{
			BaseURL:        "https://app.asana.com/api/1.0",
			RequestTimeout: "30s",
			RateLimit:      2.0,
		},
		Email: EmailConfig{
			Port:             587,
			UseTLS:           true,
			FromName:         "Reparo",
			DistributionList: "maintenance@yourcompany.com",
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Schedule: "0 * * * *", // Hourly
			Lookback: "24h",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/reparo",
			},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files, later files overriding earlier
// ones. Priority: env > last file > ... > first file > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	// Subtasks land in the repair project unless routed elsewhere
	if config.Asana.SubtasksProjectGID == "" {
		config.Asana.SubtasksProjectGID = config.Asana.RepairProjectGID
	}

	return config, nil
}

// Validate checks the configuration for structural problems
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.ParseDuration(c.Asana.RequestTimeout); err != nil {
		return fmt.Errorf("invalid asana request_timeout %q: %w", c.Asana.RequestTimeout, err)
	}
	if _, err := time.ParseDuration(c.Scheduler.Lookback); err != nil {
		return fmt.Errorf("invalid scheduler lookback %q: %w", c.Scheduler.Lookback, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("REPARO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server
	if port := os.Getenv("REPARO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("REPARO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging
	if level := os.Getenv("REPARO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Upstream platform
	if token := os.Getenv("ASANA_TOKEN"); token != "" {
		config.Asana.AccessToken = token
	}
	if gid := os.Getenv("REPAIR_PROJECT_ID"); gid != "" {
		config.Asana.RepairProjectGID = gid
	}
	if gid := os.Getenv("SUBTASKS_PROJECT_ID"); gid != "" {
		config.Asana.SubtasksProjectGID = gid
	}
	if base := os.Getenv("REPARO_ASANA_BASE_URL"); base != "" {
		config.Asana.BaseURL = base
	}

	// Email
	if user := os.Getenv("EMAIL_USER"); user != "" {
		config.Email.Username = user
		if config.Email.From == "" {
			config.Email.From = user
		}
	}
	if password := os.Getenv("EMAIL_PASSWORD"); password != "" {
		config.Email.Password = password
	}
	if server := os.Getenv("EMAIL_SERVER"); server != "" {
		config.Email.Host = server
	}
	if port := os.Getenv("EMAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Email.Port = p
		}
	}
	if list := os.Getenv("EMAIL_DISTRIBUTION_LIST"); list != "" {
		config.Email.DistributionList = list
	}

	// Webhook
	if target := os.Getenv("REPARO_WEBHOOK_TARGET_URL"); target != "" {
		config.Webhook.TargetURL = target
	}

	// Storage
	if path := os.Getenv("REPARO_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}
