package convfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/colorium/nameconv/internal/safefile"
)

// sanitizePathError removes the path from os.PathError so error messages
// don't expose file system paths to users.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxFileSize is the maximum allowed size for a convention file (1MB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length for one regular
	// expression (512 bytes). Long expressions are rejected to bound the
	// cost of compiling and matching them.
	MaxPatternLength = 512

	// MaxRuleCount is the maximum number of rules in a file, nested rules
	// included.
	MaxRuleCount = 1000

	// MaxDepth is the maximum nesting depth of conventions. The top level
	// is depth 1.
	MaxDepth = 8

	// SupportedVersion is the currently supported file format version.
	SupportedVersion = 1
)

// Load reads and validates a convention file.
//
// Only regular files are accepted: symlinks, FIFOs and devices are rejected
// before any read, and reads are bounded by MaxFileSize.
//
// Example:
//
//	f, err := convfile.Load("convention.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load convention file: %v", err)
//	}
func Load(path string) (*File, error) {
	data, err := safefile.ReadRegular(path, MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read convention file: %w", sanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a convention file held in memory.
func LoadBytes(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("convention file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("convention file too large: %s (max %s)",
			humanize.IBytes(uint64(len(data))), humanize.IBytes(MaxFileSize))
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate performs schema-level validation on the file.
// It checks for:
//   - Supported version number
//   - At least one rule at every level
//   - Required names, unique among siblings
//   - Exactly one of pattern, patterns or rules per rule
//   - Pattern length, rule count and nesting depth limits
//
// Validate does NOT compile regular expressions; Build does.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}

	if len(f.Rules) == 0 {
		return &ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
		}
	}

	count := 0
	if err := validateRules(f.Rules, "", 1, &count); err != nil {
		return err
	}
	if count > MaxRuleCount {
		return &ValidationError{
			Field:   "rules",
			Message: fmt.Sprintf("too many rules (%d), maximum allowed is %d", count, MaxRuleCount),
		}
	}
	return nil
}

func validateRules(defs []RuleDef, parent string, depth int, count *int) error {
	*count += len(defs)
	if *count > MaxRuleCount {
		// Stop walking; Validate reports the count.
		return nil
	}

	seen := make(map[string]int, len(defs))
	for i, d := range defs {
		path := rulePath(parent, d.Name, i)

		if strings.TrimSpace(d.Name) == "" {
			return &RuleError{Path: path, Index: i, Field: "name", Message: "name is required"}
		}
		if prev, exists := seen[d.Name]; exists {
			return &RuleError{
				Path:    path,
				Index:   i,
				Field:   "name",
				Message: fmt.Sprintf("duplicate name (previously defined at rules[%d])", prev),
			}
		}
		seen[d.Name] = i

		switch d.kinds() {
		case 0:
			return &RuleError{Path: path, Index: i, Field: "pattern", Message: "one of pattern, patterns or rules is required"}
		case 1:
		default:
			return &RuleError{Path: path, Index: i, Field: "pattern", Message: "pattern, patterns and rules are mutually exclusive"}
		}

		if d.Separator != "" && len(d.Rules) == 0 {
			return &RuleError{Path: path, Index: i, Field: "separator", Message: "separator is only valid for rules with nested rules"}
		}

		if len(d.Pattern) > MaxPatternLength {
			return &RuleError{
				Path:    path,
				Index:   i,
				Field:   "pattern",
				Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(d.Pattern), MaxPatternLength),
			}
		}
		for j, p := range d.Patterns {
			if p == "" {
				return &RuleError{Path: path, Index: i, Field: "patterns", Message: fmt.Sprintf("patterns[%d] is empty", j)}
			}
			if len(p) > MaxPatternLength {
				return &RuleError{
					Path:    path,
					Index:   i,
					Field:   "patterns",
					Message: fmt.Sprintf("patterns[%d] too long: %d bytes (max %d)", j, len(p), MaxPatternLength),
				}
			}
		}

		if len(d.Rules) > 0 {
			if depth+1 > MaxDepth {
				return &RuleError{
					Path:    path,
					Index:   i,
					Field:   "rules",
					Message: fmt.Sprintf("nesting too deep (max depth %d)", MaxDepth),
				}
			}
			if err := validateRules(d.Rules, path, depth+1, count); err != nil {
				return err
			}
		}
	}
	return nil
}

// rulePath joins a rule name onto its parent's path. Unnamed rules are
// addressed by index.
func rulePath(parent, name string, index int) string {
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("%s[%d]", parent, index)
	}
	if parent == "" {
		return name
	}
	return parent + "." + name
}
