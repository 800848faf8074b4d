// Package config layers defaults, an optional YAML file, MENSA_* environment
// variables and command-line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const DefaultStartURL = "https://www.mensaplan.de/index.html"

type Config struct {
	DBPath  string `yaml:"db"`
	DataDir string `yaml:"data_dir"`

	StartURL  string        `yaml:"start_url"`
	Workers   int           `yaml:"workers"`
	Limit     int           `yaml:"limit"`
	Overwrite bool          `yaml:"overwrite"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`

	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func Default() Config {
	return Config{
		DBPath:      "mensa_data.db",
		DataDir:     "data",
		StartURL:    DefaultStartURL,
		Workers:     4,
		Timeout:     30 * time.Second,
		Addr:        ":8080",
		CORSOrigins: []string{"*"},
	}
}

// LoadFile reads a YAML config. A sibling "<name>.local.<ext>" file, when
// present, is merged over it.
func LoadFile(path string) (Config, error) {
	var out Config
	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	localPath := strings.TrimSuffix(path, ext) + ".local" + ext
	local, err := os.ReadFile(localPath)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("failed to read local config: %w", err)
	}

	var override Config
	if err := yaml.Unmarshal(local, &override); err != nil {
		return out, fmt.Errorf("failed to parse config %s: %w", localPath, err)
	}
	if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
		return out, fmt.Errorf("failed to merge local config: %w", err)
	}
	return out, nil
}

// FromEnv reads MENSA_DB, MENSA_DATA_DIR, MENSA_ADDR and MENSA_WORKERS.
func FromEnv(getenv func(string) string) (Config, error) {
	var out Config
	out.DBPath = getenv("MENSA_DB")
	out.DataDir = getenv("MENSA_DATA_DIR")
	out.Addr = getenv("MENSA_ADDR")
	if w := getenv("MENSA_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return out, fmt.Errorf("invalid MENSA_WORKERS %q: %w", w, err)
		}
		out.Workers = n
	}
	return out, nil
}

// Load merges defaults, the file at path (skipped when path is empty), the
// environment and flags, later layers winning. Zero values never override,
// so a layer cannot switch a boolean back off.
func Load(path string, getenv func(string) string, flags Config) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("failed to merge config file: %w", err)
		}
	}

	envCfg, err := FromEnv(getenv)
	if err != nil {
		return cfg, err
	}
	if err := mergo.Merge(&cfg, envCfg, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("failed to merge environment: %w", err)
	}

	if err := mergo.Merge(&cfg, flags, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("failed to merge flags: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative, got %d", c.Limit))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db path is empty"))
	}
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	return errors.Join(errs...)
}
