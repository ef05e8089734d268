package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colorium/nameconv/internal/conffinder"
	"github.com/colorium/nameconv/internal/config"
	"github.com/colorium/nameconv/internal/scenename"
	"github.com/colorium/nameconv/pkg/nameconv"
	"github.com/colorium/nameconv/pkg/nameconv/asset"
	"github.com/colorium/nameconv/pkg/nameconv/convfile"
)

// builtinSource names the built-in convention in output and logs.
const builtinSource = "built-in"

// runtime is what every command needs once flags are parsed.
type runtime struct {
	settings *config.Settings
	logger   *slog.Logger
	conv     *nameconv.Convention
	source   string // convention file path, or builtinSource
}

func setup(cmd *cobra.Command, g *globalOptions) (*runtime, error) {
	settings, err := config.Load(g.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), settings.Level(), g.verbose)

	conv, source, err := loadConvention(settings.Convention, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("convention loaded", "source", source, "rules", conv.Len())

	return &runtime{
		settings: settings,
		logger:   logger,
		conv:     conv,
		source:   source,
	}, nil
}

func newLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConvention resolves the convention file and builds it. A lookup that
// finds nothing falls back to the built-in convention; an explicit path
// that cannot be used is an error.
func loadConvention(explicit string, logger *slog.Logger) (*nameconv.Convention, string, error) {
	path, err := conffinder.Find(explicit)
	switch {
	case err == nil:
	case errors.Is(err, conffinder.ErrNotFound) && explicit == "":
		return asset.DefaultConvention(nameconv.WithLogger(logger)), builtinSource, nil
	default:
		return nil, "", err
	}

	conv, err := convfile.BuildFromFile(path, nameconv.WithLogger(logger))
	if err != nil {
		return nil, "", fmt.Errorf("convention %s: %w", path, err)
	}
	return conv, path, nil
}

// nameOptions returns how input lines are normalized. Extensions are kept
// when asked to, and whenever the convention separates tokens with a dot.
func (rt *runtime) nameOptions(keepExt bool) scenename.Options {
	return scenename.Options{
		KeepExtension: keepExt || strings.Contains(rt.conv.Separator(), "."),
	}
}
