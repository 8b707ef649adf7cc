// File: pkg/config/config.go

// Package config loads the settings of a glue run.
//
// Precedence, lowest to highest:
//  1. Defaults
//  2. YAML file (--config, or .glue.yaml in the walk root when present)
//  3. Environment variables prefixed with GLUE_ (GLUE_NO_IGNORE=true, GLUE_EXCLUDE=a,b)
//  4. Command-line flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// StdoutOutput is the output value that writes the bundle to standard output.
	StdoutOutput = "-"
	// DefaultOutput is the bundle file written when no output is configured.
	DefaultOutput = "output.glue"
	// DefaultFile is the config file looked up in the walk root.
	DefaultFile = ".glue.yaml"
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "GLUE_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Log formats accepted by Config.LogFormat. Empty picks one from the terminal state.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// ErrNoPatterns is returned by Validate when no include pattern is configured.
var ErrNoPatterns = errors.New("at least one include pattern is required")

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"patterns":     true,
	"exclude":      true,
	"ignore_files": true,
}

// Config holds the options for one run.
type Config struct {
	Patterns       []string `koanf:"patterns"`         // Include globs; at least one.
	Exclude        []string `koanf:"exclude"`          // Exclude globs; win over includes.
	Output         string   `koanf:"output"`           // Bundle destination, "-" for stdout.
	Root           string   `koanf:"root"`             // Directory to walk.
	NoIgnore       bool     `koanf:"no_ignore"`        // Do not consult ignore files.
	IncludeBinary  bool     `koanf:"include_binary"`   // Keep files classified as binary.
	SkipHidden     bool     `koanf:"skip_hidden"`      // Leave out dot-files and dot-directories.
	NoGlobalIgnore bool     `koanf:"no_global_ignore"` // Do not read the user's git excludes file.
	IgnoreFiles    []string `koanf:"ignore_files"`     // Per-directory ignore file names.
	Debug          bool     `koanf:"debug"`
	LogFormat      string   `koanf:"log_format"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Root:   ".",
	}
}

// Load layers the YAML file and the environment over the defaults.
// path names the YAML file explicitly; when empty, .glue.yaml in root is used if it exists.
// An empty root falls back to GLUE_ROOT, then to the working directory.
func Load(path, root string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		if root == "" {
			root = RootFromEnv()
		}
		if root == "" {
			root = "."
		}
		path = filepath.Join(root, DefaultFile)
	}

	content, err := readConfigFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file in the root.
	default:
		return nil, err
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// RootFromEnv returns the walk root set through GLUE_ROOT, or "" when unset.
func RootFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + "ROOT"))
}

// Validate checks the fields the pipeline relies on.
func (c *Config) Validate() error {
	if len(c.Patterns) == 0 {
		return ErrNoPatterns
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	switch c.LogFormat {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// WritesToStdout reports whether the bundle goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.Output == StdoutOutput
}

// readConfigFile reads a config file, refusing anything larger than maxConfigFileSize.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path is a directory: %s", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envValue maps GLUE_NO_IGNORE to no_ignore and splits list values on commas.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
