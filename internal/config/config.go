// Package config loads the demo binary's logger settings from a TOML file,
// an optional .env file and LOGGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/mordilloSan/runlog/logger"
)

// Color modes accepted by LoggerConfig.Colors.
const (
	ColorsAuto   = "auto"
	ColorsAlways = "always"
	ColorsNever  = "never"
)

// Environment variables that override the file.
const (
	EnvLevel    = "LOGGER_LEVEL"
	EnvColors   = "LOGGER_COLORS"
	EnvDir      = "LOGGER_DIR"
	EnvBasePath = "LOGGER_BASE_PATH"
	EnvFile     = "LOGGER_FILE"
)

// Config is the root of the TOML file.
type Config struct {
	// Logger holds the [logger] table.
	Logger LoggerConfig `toml:"logger"`
}

// LoggerConfig defines the [logger] table. Unset keys keep the values
// from Default.
type LoggerConfig struct {
	// Level is the minimum severity name, e.g. "info" or "warning".
	// Default: "info"
	Level string `toml:"level" validate:"required,severity"`
	// Colors is "auto" (colors on a terminal unless NO_COLOR is set),
	// "always" or "never".
	// Default: "auto"
	Colors string `toml:"colors" validate:"required,oneof=auto always never"`
	// Timestamps prefixes each line with the date and time.
	// Default: true
	Timestamps bool `toml:"timestamps"`
	// SourceInfo adds the [file:line] field.
	// Default: true
	SourceInfo bool `toml:"source_info"`
	// BasePath is stripped from source file paths; empty shows them as is.
	// Default: ""
	BasePath string `toml:"base_path"`
	// Dir is the log directory, created on startup.
	// Default: "logs"
	Dir string `toml:"dir" validate:"required"`
	// FileName is the log file name template inside Dir. {date}, {time} and
	// {pid} are expanded; path separators are rejected.
	// Default: "{date}_{time}.log"
	FileName string `toml:"file_name" validate:"required,file_name"`
	// File enables the log file; false logs to the console only.
	// Default: true
	File bool `toml:"file"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:      "info",
			Colors:     ColorsAuto,
			Timestamps: true,
			SourceInfo: true,
			Dir:        logger.DefaultLogDir,
			FileName:   logger.DefaultFileNameTemplate,
			File:       true,
		},
	}
}

// Load reads path on top of the defaults. An empty path or a missing file
// yields the defaults. Environment overrides are applied and the result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(content, cfg); err != nil {
				var derr *toml.DecodeError
				if errors.As(err, &derr) {
					row, col := derr.Position()
					return nil, fmt.Errorf("failed to parse config file %s at line %d, column %d: %v", path, row, col, derr)
				}
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set are kept.
func LoadDotEnv(files ...string) error {
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from LOGGER_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvLevel); ok && v != "" {
		c.Logger.Level = v
	}
	if v, ok := os.LookupEnv(EnvColors); ok && v != "" {
		c.Logger.Colors = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvDir); ok && v != "" {
		c.Logger.Dir = v
	}
	if v, ok := os.LookupEnv(EnvBasePath); ok {
		c.Logger.BasePath = v
	}
	if v, ok := os.LookupEnv(EnvFile); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvFile, v, err)
		}
		c.Logger.File = b
	}
	return nil
}

// Severity returns the parsed minimum level. Call after Validate.
func (c *LoggerConfig) Severity() logger.Severity {
	s, err := logger.ParseSeverity(c.Level)
	if err != nil {
		return logger.InfoLevel
	}
	return s
}

// ColorsFor resolves the color mode for the given console writer. "auto"
// means colors on a terminal unless NO_COLOR is set.
func (c *LoggerConfig) ColorsFor(console io.Writer) bool {
	switch c.Colors {
	case ColorsAlways:
		return true
	case ColorsNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return logger.IsTerminal(console)
}

// Options maps the settings to logger options for the given console.
func (c *Config) Options(console io.Writer) []logger.Option {
	lc := &c.Logger
	colors := lc.ColorsFor(console)
	return []logger.Option{
		logger.WithConsole(console),
		logger.WithMinimumSeverity(lc.Severity()),
		logger.WithColors(colors),
		logger.WithTimestamps(lc.Timestamps),
		logger.WithSourceInfo(lc.SourceInfo),
		logger.WithBasePath(lc.BasePath),
		logger.WithLogDir(lc.Dir),
		logger.WithFileNameTemplate(lc.FileName),
		logger.WithJournalPrefix(!colors && os.Getenv("JOURNAL_STREAM") != ""),
	}
}
