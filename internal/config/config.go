// Package config loads codesym settings from defaults, an optional YAML file,
// CODESYM_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CODESYM"

// ConfigName is the config file searched for in the working and home directories.
const ConfigName = ".codesym"

// Keys shared by the config file, the environment and the CLI flags.
const (
	KeyMaxChunkSize = "max_chunk_size"
	KeyInclude      = "include"
	KeyExclude      = "exclude"
	KeyContent      = "content"
	KeyWorkers      = "workers"
	KeyGitignore    = "gitignore"
	KeyCacheDB      = "cache_db"
	KeyFormat       = "format"
)

var (
	// ErrInvalidChunkSize indicates a negative max_chunk_size.
	ErrInvalidChunkSize = errors.New("invalid max chunk size")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")
)

// Config holds the settings shared by the CLI and the MCP server.
type Config struct {
	MaxChunkSize int      `mapstructure:"max_chunk_size" yaml:"max_chunk_size"`
	Include      []string `mapstructure:"include" yaml:"include"`
	Exclude      []string `mapstructure:"exclude" yaml:"exclude"`
	Content      bool     `mapstructure:"content" yaml:"content"`
	Workers      int      `mapstructure:"workers" yaml:"workers"`
	Gitignore    bool     `mapstructure:"gitignore" yaml:"gitignore"`
	CacheDB      string   `mapstructure:"cache_db" yaml:"cache_db"`
	Format       string   `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxChunkSize: 0,
		Include:      []string{"**/*"},
		Exclude:      []string{},
		Content:      false,
		Workers:      1,
		Gitignore:    false,
		CacheDB:      "",
		Format:       "json",
	}
}

// Load reads configuration into v and decodes it. Priority, highest first:
// flags already bound to v, CODESYM_* environment, the config file, defaults.
//
// configFile names an explicit file that must exist. When empty, .codesym.yaml
// is looked up in the working directory and then the home directory; a
// missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMaxChunkSize, d.MaxChunkSize)
	v.SetDefault(KeyInclude, d.Include)
	v.SetDefault(KeyExclude, d.Exclude)
	v.SetDefault(KeyContent, d.Content)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyGitignore, d.Gitignore)
	v.SetDefault(KeyCacheDB, d.CacheDB)
	v.SetDefault(KeyFormat, d.Format)
}

// Validate checks that the configuration is usable.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.MaxChunkSize < 0 {
		errs = append(errs, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidChunkSize, cfg.MaxChunkSize))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkers, cfg.Workers))
	}
	switch cfg.Format {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("%w: %q (must be json or yaml)", ErrInvalidFormat, cfg.Format))
	}
	return errors.Join(errs...)
}
