// Package config handles configuration loading and validation. Values are
// layered: defaults, then the TOML file, then a .env file and MEDIAGRAB_*
// environment variables. CLI flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"mediagrab/internal/httputil"
	"mediagrab/internal/provider"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEDIAGRAB_"

// Config holds all application configuration.
type Config struct {
	Creator     string             `toml:"creator"`
	Timeout     Duration           `toml:"timeout"`
	Concurrency int                `toml:"concurrency"`
	UserAgent   string             `toml:"user_agent"`
	History     bool               `toml:"history"`
	Debug       bool               `toml:"debug"`
	LogLevel    string             `toml:"log_level"`
	Endpoints   provider.Endpoints `toml:"endpoints"`
}

// Duration is a time.Duration written as a Go duration string ("45s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Creator:     provider.DefaultCreator,
		Timeout:     Duration{httputil.DefaultTimeout},
		Concurrency: provider.DefaultConcurrency,
		History:     true,
		LogLevel:    "info",
		Endpoints:   provider.DefaultEndpoints(),
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mediagrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mediagrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, then .env in the working directory, then the
// process environment. Missing files are not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		path = ""
	}
	return LoadFrom(path, ".env")
}

// LoadFrom is Load with explicit file locations. Either may be empty.
func LoadFrom(configPath, envFile string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
			}
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		default:
			dotenv = vals
		}
	}

	// Real environment variables win over .env entries.
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("CREATOR", &c.Creator)
	str("USER_AGENT", &c.UserAgent)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		if err := c.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
	}
	if v, ok := lookup(EnvPrefix + "CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCONCURRENCY: %w", EnvPrefix, err)
		}
		c.Concurrency = n
	}
	if err := boolean("HISTORY", &c.History); err != nil {
		return err
	}
	if err := boolean("DEBUG", &c.Debug); err != nil {
		return err
	}

	str("SSSTIK_URL", &c.Endpoints.SSSTik)
	str("TIKDOWN_URL", &c.Endpoints.TikDown)
	str("FDOWN_URL", &c.Endpoints.FDown)
	str("SNAPINSTA_URL", &c.Endpoints.SnapInsta)
	str("SNAPANY_URL", &c.Endpoints.SnapAny)
	str("YTCONVERT_URL", &c.Endpoints.YTConvert)
	str("RYIN_URL", &c.Endpoints.Ryin)
	str("SFILE_REFERER", &c.Endpoints.SfileReferer)
	return nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Creator) == "" {
		return fmt.Errorf("creator cannot be empty")
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Concurrency < 1 || c.Concurrency > 32 {
		return fmt.Errorf("concurrency %d out of range (1-32)", c.Concurrency)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unsupported log level %q: %w", c.LogLevel, err)
	}

	endpoints := map[string]string{
		"ssstik":        c.Endpoints.SSSTik,
		"tikdown":       c.Endpoints.TikDown,
		"fdown":         c.Endpoints.FDown,
		"snapinsta":     c.Endpoints.SnapInsta,
		"snapany":       c.Endpoints.SnapAny,
		"ytconvert":     c.Endpoints.YTConvert,
		"ryin":          c.Endpoints.Ryin,
		"sfile_referer": c.Endpoints.SfileReferer,
	}
	for name, u := range endpoints {
		if u == "" {
			continue
		}
		if err := httputil.ValidateURL(u); err != nil {
			return fmt.Errorf("endpoint %s: %w", name, err)
		}
	}
	return nil
}

// Level returns the zerolog level, with debug forcing DebugLevel.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// HistoryPath returns the path to the extraction log database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "mediagrab", "history.db"), nil
}
