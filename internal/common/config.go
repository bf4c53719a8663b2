package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Knowledge   KnowledgeConfig `toml:"knowledge"`
	Chat        ChatConfig      `toml:"chat"`
	Claude      ClaudeConfig    `toml:"claude"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"required,gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
	Files  FilesConfig  `toml:"files"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// FilesConfig holds the on-disk locations for raw documents, extracted
// text artifacts, and general attachment uploads.
type FilesConfig struct {
	Documents string `toml:"documents" validate:"required"` // Raw knowledge base blobs ({id}{ext})
	Extracted string `toml:"extracted" validate:"required"` // Extracted text artifacts ({id}.txt)
	Uploads   string `toml:"uploads" validate:"required"`   // General attachment uploads
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// KnowledgeConfig controls ingestion limits and retrieval budgets
type KnowledgeConfig struct {
	MaxFileSize       int64  `toml:"max_file_size" validate:"gt=0"`     // Upload size cap in bytes
	MaxContextChars   int    `toml:"max_context_chars" validate:"gt=0"` // Character budget for injected context
	ReconcileSchedule string `toml:"reconcile_schedule"`                // Cron schedule for index/artifact sweep ("" disables)
}

type ChatConfig struct {
	CompanyName  string `toml:"company_name"`
	HistoryLimit int    `toml:"history_limit" validate:"gt=0"` // Messages of history sent to the model
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key (ANTHROPIC_API_KEY overrides)
	Model       string  `toml:"model"`       // Model for chat completions
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between API calls (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// NewDefaultConfig returns a configuration populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/securechat.db",
				ResetOnStartup: false,
			},
			Files: FilesConfig{
				Documents: "./data/knowledge_base",
				Extracted: "./data/knowledge_base/extracted",
				Uploads:   "./data/uploads",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Knowledge: KnowledgeConfig{
			MaxFileSize:       5 * 1024 * 1024, // 5 MB
			MaxContextChars:   12000,
			ReconcileSchedule: "0 0 * * * *", // Hourly sweep
		},
		Chat: ChatConfig{
			CompanyName:  "Our Company",
			HistoryLimit: 50,
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Timeout:     "2m",
			RateLimit:   "1s",
			Temperature: 0.7,
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> env. Later files override earlier files; CLI flag
// overrides are applied separately via ApplyFlagOverrides.
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints on the resolved configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SECURECHAT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("SECURECHAT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SECURECHAT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if path := os.Getenv("SECURECHAT_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if level := os.Getenv("SECURECHAT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if company := os.Getenv("COMPANY_NAME"); company != "" {
		config.Chat.CompanyName = company
	}

	// API key from environment wins over the config file
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if maxTokens := os.Getenv("MAX_TOKENS"); maxTokens != "" {
		if m, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = m
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
