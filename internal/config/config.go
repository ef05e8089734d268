// Package config loads the nameconv command settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/colorium/nameconv/internal/safefile"
)

// EnvPrefix prefixes every environment variable, e.g. NAMECONV_FORMAT.
const EnvPrefix = "NAMECONV"

// MaxFileSize bounds the settings file.
const MaxFileSize = 256 * 1024

// Output formats.
const (
	FormatJSONL  = "jsonl"
	FormatPretty = "pretty"
)

// Settings are the resolved command settings.
type Settings struct {
	// Convention is the convention file path. Empty means look it up.
	Convention string
	// Format is the report format: jsonl or pretty.
	Format string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Strict makes check exit non-zero if any name is rejected. Every name
	// is still checked and reported.
	Strict bool
	Watch  WatchSettings
}

// WatchSettings configure the watch command.
type WatchSettings struct {
	// Poll uses polling instead of file system notifications.
	Poll bool
	// FromStart checks the lines already in the file before following it.
	FromStart bool
}

// Level returns the parsed log level.
func (s *Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// flagKeys maps command-line flag names to settings keys.
var flagKeys = map[string]string{
	"convention": "convention",
	"format":     "format",
	"log-level":  "log_level",
	"strict":     "strict",
	"poll":       "watch.poll",
	"from-start": "watch.from_start",
}

// Load resolves settings with CLI flags > environment > settings file >
// defaults precedence. path may be empty; flags may be nil. Flags missing
// from the set are skipped.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("convention", "")
	v.SetDefault("format", FormatJSONL)
	v.SetDefault("log_level", "warn")
	v.SetDefault("strict", false)
	v.SetDefault("watch.poll", false)
	v.SetDefault("watch.from_start", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	s := &Settings{
		Convention: v.GetString("convention"),
		Format:     v.GetString("format"),
		LogLevel:   v.GetString("log_level"),
		Strict:     v.GetBool("strict"),
		Watch: WatchSettings{
			Poll:      v.GetBool("watch.poll"),
			FromStart: v.GetBool("watch.from_start"),
		},
	}

	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// readFile reads the settings file through safefile so special files are
// rejected, then hands the content to viper.
func readFile(v *viper.Viper, path string) error {
	data, err := safefile.ReadRegular(path, MaxFileSize)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = "yaml"
	}
	v.SetConfigType(ext)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}
	return nil
}

func validate(s *Settings) error {
	var errs []error
	switch s.Format {
	case FormatJSONL, FormatPretty:
	default:
		errs = append(errs, fmt.Errorf("format must be %s or %s, got %q", FormatJSONL, FormatPretty, s.Format))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s.LogLevel))
	}
	return errors.Join(errs...)
}
