// Package conffinder locates the naming convention file.
package conffinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConvention is the environment variable name for specifying the
// convention file.
const EnvConvention = "NAMECONV_CONVENTION"

// ErrNotFound is returned when no convention file could be located.
var ErrNotFound = errors.New("convention file not found")

// FileNames are the file names looked up in each default directory, in
// priority order.
var FileNames = []string{"nameconv.yaml", "nameconv.yml", ".nameconv.yaml"}

// DefaultDirs returns candidate directories in priority order: the working
// directory, then the user configuration directory.
func DefaultDirs() []string {
	dirs := []string{"."}
	if cfg, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(cfg, "nameconv"))
	}
	return dirs
}

// Find returns the path of the convention file.
//
// Priority:
//  1. explicit (if non-empty)
//  2. NAMECONV_CONVENTION environment variable
//  3. The first of FileNames found in DefaultDirs()
//
// An explicit or environment path that is not a regular file is an error
// rather than a reason to keep looking. Returns ErrNotFound if no default
// location holds a file; callers then use the built-in convention.
// The returned path has symlinks resolved.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveFile(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified file does not exist or is not a regular file", ErrNotFound)
	}

	if envPath := os.Getenv(EnvConvention); envPath != "" {
		if resolved := resolveFile(envPath); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to an invalid file", ErrNotFound, EnvConvention)
	}

	for _, dir := range DefaultDirs() {
		if path := findIn(dir); path != "" {
			return path, nil
		}
	}

	return "", ErrNotFound
}

// findIn returns the first of FileNames present in dir.
func findIn(dir string) string {
	for _, name := range FileNames {
		if resolved := resolveFile(filepath.Join(dir, name)); resolved != "" {
			return resolved
		}
	}
	return ""
}

// resolveFile resolves symlinks and checks the target is a regular file.
// Returns the resolved path if valid, empty string otherwise.
func resolveFile(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ""
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return resolved
}
