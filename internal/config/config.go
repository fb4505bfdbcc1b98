// Package config resolves the scytale configuration from defaults, optional
// configuration files, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RowanDark/scytale/internal/attack"
	"github.com/RowanDark/scytale/internal/env"
)

// Config captures the resolved scytale configuration.
type Config struct {
	// OutputDir is where attack candidate files are written.
	OutputDir string `yaml:"output_dir"`

	// LanguageTable optionally points at a YAML letter-frequency table.
	// Empty means the built-in English table.
	LanguageTable string `yaml:"language_table"`

	Attack AttackConfig `yaml:"attack"`
}

// AttackConfig bounds the cryptanalysis search.
type AttackConfig struct {
	MaxColumns   int `yaml:"max_columns"`
	MaxKeyLength int `yaml:"max_key_length"`
	Concurrency  int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:     "out",
		LanguageTable: "",
		Attack: AttackConfig{
			MaxColumns:   attack.DefaultMaxColumns,
			MaxKeyLength: attack.DefaultMaxKeyLength,
			Concurrency:  4,
		},
	}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. The lookup order for configuration files is:
//  1. ~/.scytale/config.yml
//  2. ./scytale.yml
//
// Environment variables prefixed with SCYTALE_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".scytale", "config.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	path := filepath.Join(wd, "scytale.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// fileConfig mirrors Config with pointer fields so absent keys leave the
// current value untouched.
type fileConfig struct {
	OutputDir     *string           `yaml:"output_dir"`
	LanguageTable *string           `yaml:"language_table"`
	Attack        *fileAttackConfig `yaml:"attack"`
}

type fileAttackConfig struct {
	MaxColumns   *int `yaml:"max_columns"`
	MaxKeyLength *int `yaml:"max_key_length"`
	Concurrency  *int `yaml:"concurrency"`
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*fc.OutputDir)
	}
	if fc.LanguageTable != nil {
		cfg.LanguageTable = strings.TrimSpace(*fc.LanguageTable)
	}
	if fc.Attack != nil {
		if fc.Attack.MaxColumns != nil {
			cfg.Attack.MaxColumns = *fc.Attack.MaxColumns
		}
		if fc.Attack.MaxKeyLength != nil {
			cfg.Attack.MaxKeyLength = *fc.Attack.MaxKeyLength
		}
		if fc.Attack.Concurrency != nil {
			cfg.Attack.Concurrency = *fc.Attack.Concurrency
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if val, ok := env.Lookup("SCYTALE_OUT", "CIPHER_OUT"); ok && strings.TrimSpace(val) != "" {
		cfg.OutputDir = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup("SCYTALE_LANGUAGE_TABLE", ""); ok && strings.TrimSpace(val) != "" {
		cfg.LanguageTable = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup("SCYTALE_MAX_COLUMNS", ""); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			cfg.Attack.MaxColumns = parsed
		}
	}
	if val, ok := env.Lookup("SCYTALE_MAX_KEY_LENGTH", ""); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			cfg.Attack.MaxKeyLength = parsed
		}
	}
	if val, ok := env.Lookup("SCYTALE_CONCURRENCY", ""); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			cfg.Attack.Concurrency = parsed
		}
	}
}

func (c Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Attack.MaxColumns < 2 {
		return fmt.Errorf("attack.max_columns must be at least 2, got %d", c.Attack.MaxColumns)
	}
	if c.Attack.MaxKeyLength < 1 {
		return fmt.Errorf("attack.max_key_length must be at least 1, got %d", c.Attack.MaxKeyLength)
	}
	if c.Attack.Concurrency < 1 {
		return fmt.Errorf("attack.concurrency must be at least 1, got %d", c.Attack.Concurrency)
	}
	return nil
}
