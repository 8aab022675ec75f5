// Package config resolves command-line tool settings.
//
// Each setting is taken from, in order: the command-line flag, the
// TRACKMETA_* environment variable, a .env file, and the built-in default.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TRACKMETA_"

// Config holds resolved settings.
type Config struct {
	LogLevel  string
	LogFormat string // "pretty" or "json"
	NoColor   bool

	// ReadLimit is the number of leading bytes read per file
	ReadLimit int64

	// Concurrency bounds parallel reads during scans
	Concurrency int
}

// Flags carries raw flag values. Empty strings mean "not given".
type Flags struct {
	LogLevel    string
	LogFormat   string
	ReadLimit   string
	Concurrency string

	// EnvFile is the .env file to load; empty means ".env"
	EnvFile string
}

// Load resolves settings from flags, the environment and the .env file.
// A missing .env file is not an error.
func Load(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadEnvFile(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		LogLevel:  getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		LogFormat: getConfigValue(flags.LogFormat, "LOG_FORMAT", logger.FormatPretty),
		NoColor:   os.Getenv("NO_COLOR") != "" || getBoolConfigValue("", "NO_COLOR", false),
	}

	readLimit, err := getIntConfigValue(flags.ReadLimit, "READ_LIMIT", trackmeta.DefaultReadLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid read limit: %w", err)
	}
	cfg.ReadLimit = readLimit

	concurrency, err := getIntConfigValue(flags.Concurrency, "CONCURRENCY", int64(runtime.NumCPU()))
	if err != nil {
		return nil, fmt.Errorf("invalid concurrency: %w", err)
	}
	cfg.Concurrency = int(concurrency)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case logger.FormatPretty, logger.FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (must be pretty or json)", c.LogFormat)
	}

	if c.ReadLimit < 10 {
		return fmt.Errorf("read limit %d is smaller than a tag header", c.ReadLimit)
	}

	if c.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}

	return nil
}

// Logger builds the logger described by c.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return logger.New(logger.Config{
		Writer:  w,
		Format:  c.LogFormat,
		Level:   logger.ParseLevel(c.LogLevel),
		NoColor: c.NoColor,
	})
}

// ReadOptions translates c into library options.
func (c *Config) ReadOptions(log *slog.Logger) []trackmeta.Option {
	return []trackmeta.Option{
		trackmeta.WithReadLimit(c.ReadLimit),
		trackmeta.WithConcurrency(c.Concurrency),
		trackmeta.WithLogger(log),
	}
}

// getConfigValue returns a value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable (possibly set from .env).
	if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an integer from flag, env var, or default.
// Sizes may carry a K, M or G suffix (powers of 1024).
func getIntConfigValue(flagValue, envKey string, defaultValue int64) (int64, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	return parseSize(strValue)
}

func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "IB"), "B")

	mult := int64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult = 1 << 10
	case strings.HasSuffix(s, "M"):
		mult = 1 << 20
	case strings.HasSuffix(s, "G"):
		mult = 1 << 30
	}
	if mult > 1 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file
		if _, set := os.LookupEnv(key); !set {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
