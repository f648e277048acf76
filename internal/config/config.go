// ABOUTME: Coach configuration: TOML file, .env, and environment overrides.
// ABOUTME: Also builds the storage backend and model gateway the config selects.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/coach/internal/charm"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/storage"
	"github.com/joho/godotenv"
)

// Backend names accepted in the backend setting.
const (
	BackendSQLite = "sqlite"
	BackendLibSQL = "libsql"
	BackendCharm  = "charm"
)

const (
	defaultListen       = ":8080"
	defaultReadTimeout  = 30
	defaultWriteTimeout = 240
)

// Config stores coach configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "libsql", or "charm".
	Backend string `toml:"backend,omitempty"`

	// DataDir is where the SQLite database lives. Supports ~ expansion.
	// Defaults to ~/.local/share/coach.
	DataDir string `toml:"data_dir,omitempty"`

	// DatabaseURL is the libSQL/Turso URL, auth token included.
	DatabaseURL string `toml:"database_url,omitempty"`

	// Schedule is the cron expression for nightly plan pre-generation. "off" disables it.
	Schedule string `toml:"schedule,omitempty"`

	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string `toml:"log_level,omitempty"`

	Server ServerConfig `toml:"server"`
	LLM    LLMConfig    `toml:"llm"`

	// JWTSecret signs bearer tokens. Read from JWT_SECRET, never written to disk.
	JWTSecret string `toml:"-"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Listen              string `toml:"listen,omitempty"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds,omitempty"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds,omitempty"`
}

// LLMConfig selects the model provider. Keys come from the environment only.
type LLMConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`

	APIKey string `toml:"-"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the HTTP listen address.
func (c *Config) GetListen() string {
	if c.Server.Listen == "" {
		return defaultListen
	}
	return c.Server.Listen
}

// ReadTimeout returns the HTTP read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return seconds(c.Server.ReadTimeoutSeconds, defaultReadTimeout)
}

// WriteTimeout returns the HTTP write timeout. Plan generation is slow, so the default is generous.
func (c *Config) WriteTimeout() time.Duration {
	return seconds(c.Server.WriteTimeoutSeconds, defaultWriteTimeout)
}

// ScheduleEnabled reports whether nightly pre-generation should run.
func (c *Config) ScheduleEnabled() bool {
	return c.Schedule != "off"
}

func seconds(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	var (
		repo storage.Repository
		err  error
	)
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		repo, err = storage.Open(filepath.Join(c.GetDataDir(), "coach.db"))
	case BackendLibSQL:
		repo, err = storage.OpenLibSQL(c.DatabaseURL)
	case BackendCharm:
		repo, err = charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// OpenGateway builds the model gateway for the configured provider.
func (c *Config) OpenGateway() (llm.Gateway, error) {
	return llm.New(c.LLM.Provider, c.LLM.APIKey,
		llm.WithModel(c.LLM.Model),
		llm.WithBaseURL(c.LLM.BaseURL))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "coach", "config.toml")
}

// Load reads .env from the working directory, then the config file, then
// applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads the config file at path, if present, and applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Backend, "COACH_BACKEND")
	setFromEnv(&c.DataDir, "COACH_DATA_DIR")
	setFromEnv(&c.DatabaseURL, "COACH_DATABASE_URL")
	setFromEnv(&c.Schedule, "COACH_SCHEDULE")
	setFromEnv(&c.LogLevel, "COACH_LOG_LEVEL")
	setFromEnv(&c.JWTSecret, "JWT_SECRET")
	setFromEnv(&c.LLM.Provider, "COACH_LLM_PROVIDER")
	setFromEnv(&c.LLM.Model, "COACH_LLM_MODEL")
	setFromEnv(&c.LLM.BaseURL, "COACH_LLM_BASE_URL")

	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			c.Server.Listen = ":" + port
		}
	}
	setFromEnv(&c.Server.Listen, "COACH_LISTEN")

	switch c.LLM.Provider {
	case llm.ProviderOpenAI:
		setFromEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
	default:
		setFromEnv(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Save writes config to disk. Secrets are never written.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
