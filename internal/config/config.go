// Package config provides configuration management for the harvester. It
// handles loading, validation, and access to configuration values from
// YAML files and environment variables through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/goharvest/internal/logger"
)

// Default configuration values.
const (
	DefaultGitHubAPIURL    = "https://api.github.com"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultUserAgent       = "goharvest/1.0"
	DefaultRegistryRepoURL = "https://github.com/MycroftAI/mycroft-skills"
	DefaultRegistryBranch  = "21.02"
	DefaultTree            = "master"
	DefaultOutputFile      = "skill-metadata.json"
	DefaultServerAddress   = ":8070"
	DefaultServerTimeout   = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultESAddress       = "http://127.0.0.1:9200"
	DefaultESIndex         = "skill-metadata"
	DefaultSchedule        = "0 4 * * *"
)

// Sentinel validation errors.
var (
	ErrMissingRegistry   = errors.New("registry repository URL is required")
	ErrMissingESAddress  = errors.New("elasticsearch address is required when indexing is enabled")
	ErrMissingServerAddr = errors.New("server address is required")
)

// Config represents the application configuration. It is built once at
// startup and passed down; no package retains mutable credential state.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Logger        logger.Config       `mapstructure:"logger"`
	GitHub        GitHubConfig        `mapstructure:"github"`
	Registry      RegistryConfig      `mapstructure:"registry"`
	Output        OutputConfig        `mapstructure:"output"`
	Server        ServerConfig        `mapstructure:"server"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// GitHubConfig holds the GitHub API client settings.
type GitHubConfig struct {
	// APIBaseURL is the GitHub REST API base URL.
	APIBaseURL string `mapstructure:"api_base_url"`
	// Token authenticates API requests. Empty is allowed but rate limited.
	Token          string        `mapstructure:"token"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// RegistryConfig describes where the skill registry lives.
type RegistryConfig struct {
	// RepoURL is the web URL of the skills registry repository.
	RepoURL string `mapstructure:"repo_url"`
	// Branch is the registry branch whose entry list is harvested.
	Branch string `mapstructure:"branch"`
	// Skills optionally pins the entry list in config instead of the
	// registry's submodule list.
	Skills []SkillRef `mapstructure:"skills"`
}

// SkillRef pins one registry entry in configuration.
type SkillRef struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
	Tree string `mapstructure:"tree"`
}

// OutputConfig holds result output settings.
type OutputConfig struct {
	// File is the output path; empty or "-" writes to stdout.
	File string `mapstructure:"file"`
}

// ServerConfig holds the metadata HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ElasticsearchConfig holds the optional record index settings.
type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	APIKey    string   `mapstructure:"api_key"`
	IndexName string   `mapstructure:"index_name"`
}

// SchedulerConfig holds the periodic harvest settings.
type SchedulerConfig struct {
	// Schedule is a cron expression.
	Schedule string `mapstructure:"schedule"`
}

// Load unmarshals the viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with production-safe defaults.
func setDefaults(cfg *Config) {
	if cfg.GitHub.APIBaseURL == "" {
		cfg.GitHub.APIBaseURL = DefaultGitHubAPIURL
	}
	if cfg.GitHub.RequestTimeout == 0 {
		cfg.GitHub.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.GitHub.UserAgent == "" {
		cfg.GitHub.UserAgent = DefaultUserAgent
	}
	if cfg.Registry.RepoURL == "" {
		cfg.Registry.RepoURL = DefaultRegistryRepoURL
	}
	if cfg.Registry.Branch == "" {
		cfg.Registry.Branch = DefaultRegistryBranch
	}
	if cfg.Output.File == "" {
		cfg.Output.File = DefaultOutputFile
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if len(cfg.Elasticsearch.Addresses) == 0 {
		cfg.Elasticsearch.Addresses = []string{DefaultESAddress}
	}
	if cfg.Elasticsearch.IndexName == "" {
		cfg.Elasticsearch.IndexName = DefaultESIndex
	}
	if cfg.Scheduler.Schedule == "" {
		cfg.Scheduler.Schedule = DefaultSchedule
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Registry.RepoURL == "" && len(c.Registry.Skills) == 0 {
		return ErrMissingRegistry
	}
	if c.Elasticsearch.Enabled && len(c.Elasticsearch.Addresses) == 0 {
		return ErrMissingESAddress
	}
	if c.Server.Address == "" {
		return ErrMissingServerAddr
	}

	return nil
}
