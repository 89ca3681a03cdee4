package pattern

import "fmt"

// ValidationError represents a schema-level validation error.
// These errors occur when a rule file violates structural requirements
// (e.g., invalid version number, too many rules).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// PatternError represents an error in an individual rule, either a pattern
// or an exclusion.
type PatternError struct {
	Section string // "patterns" or "exclusions"
	Index   int    // 0-based index within Section
	ID      string // may be empty if the id field is missing
	Field   string
	Message string
	Cause   error // e.g. the regex compile error
}

func (e *PatternError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q: %s: %s", e.Section, e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("%s[%d]: %s: %s", e.Section, e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *PatternError) Unwrap() error {
	return e.Cause
}
