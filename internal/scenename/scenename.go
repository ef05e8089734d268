// Package scenename turns raw input lines into bare scene names.
//
// Input comes from command arguments, stdin or a followed manifest file and
// may hold full paths, Windows separators, file extensions or comments.
package scenename

import (
	"regexp"
	"strings"
)

// Matches a trailing file extension: ".ma", ".mb", ".fbx", ".abc".
var extensionPattern = regexp.MustCompile(`\.[A-Za-z0-9]{1,5}$`)

// commentPrefixes mark lines that are not names.
var commentPrefixes = []string{
	"#",  // shell style
	"//", // C style
}

// Options adjust NormalizeWith.
type Options struct {
	// KeepExtension leaves a trailing extension in place. Conventions that
	// separate tokens with "." need it.
	KeepExtension bool
}

// Normalize extracts the scene name from line.
//
// Returns:
//   - (name, true): line holds a name
//   - ("", false): blank line or comment
func Normalize(line string) (string, bool) {
	return NormalizeWith(line, Options{})
}

// NormalizeWith is Normalize with options.
func NormalizeWith(line string, opts Options) (string, bool) {
	// Trim trailing CR for Windows CRLF compatibility
	line = strings.TrimRight(line, "\r")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return "", false
		}
	}

	name := Base(line)
	if !opts.KeepExtension {
		name = StripExtension(name)
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// Base returns the last element of a slash or backslash separated path.
// Unlike filepath.Base it treats both separators alike on every platform,
// since manifests are often written on Windows and read elsewhere.
func Base(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// StripExtension removes a short alphanumeric extension. A leading dot is
// not an extension, so ".nameconv" is returned unchanged.
func StripExtension(name string) string {
	loc := extensionPattern.FindStringIndex(name)
	if loc == nil || loc[0] == 0 {
		return name
	}
	return name[:loc[0]]
}
