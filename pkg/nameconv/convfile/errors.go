package convfile

import "fmt"

// ValidationError represents a file-level validation error, such as an
// unsupported version or an empty rule list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// RuleError represents an error in a single rule definition.
type RuleError struct {
	Path    string // dotted path of the rule, e.g. "scene_shot.scene"
	Index   int    // 0-based index of the rule among its siblings
	Field   string
	Message string
	Cause   error // underlying error (e.g. regex compile error)
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %s: %s", e.Path, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *RuleError) Unwrap() error {
	return e.Cause
}
