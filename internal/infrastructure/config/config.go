package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"kanboard/internal/domain/entity"
	"kanboard/pkg/slug"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/kanboard"
	defaultDataDirName    = ".local/share/kanboard"

	// EnvConfigPath overrides the config file location
	EnvConfigPath = "KANBOARD_CONFIG"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendS3     = "s3"
	BackendRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Board       BoardConfig       `yaml:"board"`
	Daemon      DaemonConfig      `yaml:"daemon"`
	HTTP        HTTPConfig        `yaml:"http"`
	Logging     LoggingConfig     `yaml:"logging"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// StorageConfig selects and configures the snapshot backend
type StorageConfig struct {
	Backend  string        `yaml:"backend" validate:"oneof=file memory s3 redis"`
	Snapshot string        `yaml:"snapshot" validate:"required"`
	DataPath string        `yaml:"data_path" validate:"required_if=Backend file"`
	Timeout  time.Duration `yaml:"timeout" validate:"min=0"`
	S3       S3Config      `yaml:"s3"`
	Redis    RedisConfig   `yaml:"redis"`
	Breaker  BreakerConfig `yaml:"breaker"`
}

// S3Config holds S3-compatible object storage settings
type S3Config struct {
	Endpoint     string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key,omitempty"`
	SecretKey    string `yaml:"secret_key,omitempty"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db" validate:"min=0"`
}

// BreakerConfig guards remote backends with a circuit breaker
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold float64       `yaml:"failure_threshold" validate:"min=0,max=1"`
	MinRequests      uint32        `yaml:"min_requests"`
}

// BoardConfig describes the columns shown on the board, in display order
type BoardConfig struct {
	Columns []ColumnConfig `yaml:"columns" validate:"min=1,dive"`
}

// ColumnConfig is one configured column. ID defaults to the slug of Title.
type ColumnConfig struct {
	ID    string `yaml:"id,omitempty"`
	Title string `yaml:"title" validate:"required"`
	Color string `yaml:"color,omitempty"`
}

// DaemonConfig holds daemon-related configuration
type DaemonConfig struct {
	SocketDir  string `yaml:"socket_dir"`
	SocketName string `yaml:"socket_name" validate:"required"`
}

// SocketPath returns the full daemon socket path
func (d DaemonConfig) SocketPath() string {
	return filepath.Join(d.SocketDir, d.SocketName)
}

// HTTPConfig holds the daemon's HTTP API settings
type HTTPConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Addr           string   `yaml:"addr" validate:"required_if=Enabled true"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Column        ColumnStyle `yaml:"column"`
	FocusedColumn ColumnStyle `yaml:"focused_column"`
	TrashColumn   ColumnStyle `yaml:"trash_column"`
	ColumnTitle   TextStyle   `yaml:"column_title"`
	Card          TextStyle   `yaml:"card"`
	SelectedCard  TextStyle   `yaml:"selected_card"`
	CarriedCard   TextStyle   `yaml:"carried_card"`
	Help          TextStyle   `yaml:"help"`
	Status        TextStyle   `yaml:"status"`
}

// ColumnStyle represents column styling
type ColumnStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Left   []string `yaml:"left"`
	Right  []string `yaml:"right"`
	PickUp []string `yaml:"pick_up"`
	Drop   []string `yaml:"drop"`
	Trash  []string `yaml:"trash"`
	Cancel []string `yaml:"cancel"`
	Add    []string `yaml:"add"`
	Delete []string `yaml:"delete"`
	Quit   []string `yaml:"quit"`
}

var validate = validator.New()

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Storage.Backend {
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("invalid config: storage.s3.bucket is required for the s3 backend")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("invalid config: storage.redis.addr is required for the redis backend")
		}
	}

	if _, err := c.Board.Resolve(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Resolve turns the configured columns into domain columns
func (b BoardConfig) Resolve() ([]entity.Column, error) {
	taken := make(map[string]bool, len(b.Columns))
	columns := make([]entity.Column, 0, len(b.Columns))

	for _, cc := range b.Columns {
		id := strings.TrimSpace(cc.ID)
		if id == "" {
			id = slug.Unique(cc.Title, taken)
		}
		if taken[id] {
			return nil, fmt.Errorf("column %q: %w", id, entity.ErrColumnAlreadyExists)
		}

		col, err := entity.NewColumn(id, cc.Title, cc.Color)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", id, err)
		}
		taken[id] = true
		columns = append(columns, col)
	}
	return columns, nil
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	homeDir    string
}

// NewLoader creates a config loader for the user's config file. The
// KANBOARD_CONFIG environment variable overrides the location.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		configPath = filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName)
	}

	return &Loader{
		configPath: configPath,
		homeDir:    homeDir,
	}, nil
}

// NewLoaderAt creates a loader for an explicit config file. Defaults that
// depend on a home directory are placed under homeDir.
func NewLoaderAt(configPath, homeDir string) *Loader {
	return &Loader{
		configPath: configPath,
		homeDir:    homeDir,
	}
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Fields missing from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default(l.homeDir)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(l.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default(l.homeDir)

	if err := l.Save(config); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.Storage.DataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return config, nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}
