package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the folio engine configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Votes    VotesConfig    `yaml:"votes"`
	Search   SearchConfig   `yaml:"search"`
	Spam     SpamConfig     `yaml:"spam"`
	Contact  ContactConfig  `yaml:"contact"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	AdminKeys []string `yaml:"admin_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Vote ledger backends.
const (
	VotesMemory = "memory"
	VotesRedis  = "redis"
	VotesBadger = "badger"
)

// VotesConfig selects where vote ledgers live.
type VotesConfig struct {
	Backend    string `yaml:"backend"`     // memory, redis, badger (default: redis)
	BadgerPath string `yaml:"badger_path"` // empty runs badger in memory
	VoterSalt  string `yaml:"voter_salt"`
}

// SearchConfig holds search limits.
type SearchConfig struct {
	MaxResults      int `yaml:"max_results"`
	SuggestionLimit int `yaml:"suggestion_limit"`
	TagLimit        int `yaml:"tag_limit"`
	Workers         int `yaml:"workers"`
}

// SpamConfig holds the classifier threshold and weight overrides.
type SpamConfig struct {
	Threshold float64       `yaml:"threshold"`
	Blacklist []string      `yaml:"blacklist"`
	Comment   WeightsConfig `yaml:"comment"`
	Contact   WeightsConfig `yaml:"contact"`
}

// WeightsConfig overrides signal weights. Nil keeps the built-in weight,
// zero disables the signal.
type WeightsConfig struct {
	BlacklistWord   *float64 `yaml:"blacklist_word"`
	ExcessLinks     *float64 `yaml:"excess_links"`
	Caps            *float64 `yaml:"caps"`
	SuspiciousEmail *float64 `yaml:"suspicious_email"`
	NameLength      *float64 `yaml:"name_length"`
	NameDigits      *float64 `yaml:"name_digits"`
	Repetition      *float64 `yaml:"repetition"`
}

// ContactConfig holds contact form addresses and the public contact card.
type ContactConfig struct {
	From         string `yaml:"from"`
	Owner        string `yaml:"owner"`
	Location     string `yaml:"location"`
	Availability string `yaml:"availability"`
	ResponseTime string `yaml:"response_time"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env.<env> file next to the working directory is loaded first when present.
func Load(env string) (Config, error) {
	if err := loadDotEnv(env); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Votes.Backend == "" {
		c.Votes.Backend = VotesRedis
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 50
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = 10
	}
	if c.Search.TagLimit <= 0 {
		c.Search.TagLimit = 30
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = 8
	}
	if c.Spam.Threshold <= 0 {
		c.Spam.Threshold = 0.7
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "folio:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required")
	}
	switch c.Votes.Backend {
	case VotesMemory, VotesRedis, VotesBadger:
	default:
		return fmt.Errorf("votes.backend must be one of memory, redis, badger, got %q", c.Votes.Backend)
	}
	if c.Spam.Threshold > 1 {
		return fmt.Errorf("spam.threshold must be in (0, 1], got %v", c.Spam.Threshold)
	}
	for name, w := range map[string]WeightsConfig{"comment": c.Spam.Comment, "contact": c.Spam.Contact} {
		if err := w.validate(); err != nil {
			return fmt.Errorf("spam.%s.%w", name, err)
		}
	}
	return nil
}

func (w WeightsConfig) validate() error {
	for name, v := range map[string]*float64{
		"blacklist_word":   w.BlacklistWord,
		"excess_links":     w.ExcessLinks,
		"caps":             w.Caps,
		"suspicious_email": w.SuspiciousEmail,
		"name_length":      w.NameLength,
		"name_digits":      w.NameDigits,
		"repetition":       w.Repetition,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, *v)
		}
	}
	return nil
}

// loadDotEnv loads .env.<env> into the process environment without
// overriding variables that are already set.
func loadDotEnv(env string) error {
	path := ".env." + env
	if !fileExists(path) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
