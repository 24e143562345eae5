// Package config loads the settings cmd/mlbparser needs before it can
// build a parser.Parser: whether debug logging is on, the default chunk
// size for feeding a transcript, and an optional feed schedule. Settings
// come from flags, environment variables, and an optional YAML file
// resolved through an XDG config path, following the teacher's own
// YAML-config-file / XDG-aware approach in app/config.go, wired through
// spf13/viper the way stormlightlabs-baseball's internal/config does.
package config

import (
	"errors"
	"os"

	"github.com/adrg/xdg"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// relConfigPath is joined onto the XDG config home, mirroring the
// teacher's filepath.Join("aretext", "config.yaml").
const relConfigPath = "mlbparser/config.yaml"

// Config holds the values cmd/mlbparser reads before constructing a
// parser.Parser or feeding it a transcript.
type Config struct {
	// Debug is passed straight through to parser.New.
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// ChunkBytes is the default chunk size for `mlbparser parse`/`regex`
	// when neither --chunk-bytes nor --feed is given on the command line.
	ChunkBytes int `mapstructure:"chunk_bytes" yaml:"chunk_bytes"`

	// FeedSchedule is a default whitespace-separated chunk-length
	// schedule (the same dialect --feed accepts), used when set and no
	// --feed flag overrides it.
	FeedSchedule string `mapstructure:"feed_schedule" yaml:"feed_schedule"`
}

// DefaultConfigPath returns the XDG-resolved path this package reads
// from when no explicit path is supplied, creating the containing
// directory if necessary (xdg.ConfigFile's own behavior).
func DefaultConfigPath() (string, error) {
	path, err := xdg.ConfigFile(relConfigPath)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "resolving XDG config path for %s", relConfigPath)
	}
	return path, nil
}

// Load builds a Config from defaults, an optional YAML file, and
// environment variables (MLBPARSER_DEBUG, MLBPARSER_CHUNK_BYTES,
// MLBPARSER_FEED_SCHEDULE), in that increasing order of precedence. An
// empty path resolves to DefaultConfigPath; a missing file at that path
// is not an error, matching viper's own ConfigFileNotFoundError
// tolerance and the teacher's os.IsNotExist(err) tolerance in
// LoadOrCreateConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		resolved, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("debug", false)
	v.SetDefault("chunk_bytes", 64)
	v.SetDefault("feed_schedule", "")

	v.SetEnvPrefix("mlbparser")
	v.AutomaticEnv()
	for _, key := range []string{"debug", "chunk_bytes", "feed_schedule"} {
		if err := v.BindEnv(key); err != nil {
			return nil, pkgerrors.Wrapf(err, "binding env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.Wrapf(err, "reading config from %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pkgerrors.Wrapf(err, "unmarshaling config from %s", path)
	}

	return &cfg, nil
}

// MustLoad calls Load and panics on error, for callers (like cobra
// PersistentPreRun hooks) that have nowhere useful to return an error to.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// WriteDefault writes the zero-value defaults out to path as YAML if no
// file exists there yet, the same os.IsNotExist-gated write-on-first-run
// the teacher's own LoadOrCreateConfig performs for its own config.yaml.
// It leaves an existing file untouched.
func WriteDefault(path string) error {
	if path == "" {
		resolved, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = resolved
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "statting %s", path)
	}

	defaults := Config{Debug: false, ChunkBytes: 64, FeedSchedule: ""}
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return pkgerrors.Wrap(err, "marshaling default config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return pkgerrors.Wrapf(err, "writing default config to %s", path)
	}
	return nil
}
