// Package config loads colourfactory defaults from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/jmylchreest/colourfactory/internal/encoder"
	"github.com/jmylchreest/colourfactory/internal/generator"
)

// Environment variable names.
const (
	EnvReserved    = "COLOURFACTORY_RESERVED"
	EnvOutputDir   = "COLOURFACTORY_OUTPUT_DIR"
	EnvMaxCount    = "COLOURFACTORY_MAX_COUNT"
	EnvLogLevel    = "COLOURFACTORY_LOG_LEVEL"
	EnvSwatchScale = "COLOURFACTORY_SWATCH_SCALE"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	ReservedPath string
	OutputDir    string
	MaxCount     int
	LogLevel     hclog.Level
	SwatchScale  int
}

// Load reads the named .env files, or ./.env when none are named, and then
// the environment. Real variables always win over file values. A missing
// ./.env is normal; a named file that cannot be read is an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	maxCount, err := getEnvInt(EnvMaxCount, generator.DefaultMaxCount)
	if err != nil {
		return Config{}, err
	}
	swatchScale, err := getEnvInt(EnvSwatchScale, 8)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ReservedPath: getEnv(EnvReserved, "definition.csv"),
		OutputDir:    getEnv(EnvOutputDir, "."),
		MaxCount:     maxCount,
		LogLevel:     hclog.LevelFromString(getEnv(EnvLogLevel, "info")),
		SwatchScale:  swatchScale,
	}

	if cfg.MaxCount <= 0 {
		return Config{}, errors.New("max count must be > 0")
	}
	if cfg.SwatchScale < 1 || cfg.SwatchScale > encoder.MaxSwatchScale {
		return Config{}, fmt.Errorf("swatch scale must be between 1 and %d", encoder.MaxSwatchScale)
	}
	if cfg.LogLevel == hclog.NoLevel {
		return Config{}, fmt.Errorf("invalid log level %q", os.Getenv(EnvLogLevel))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
