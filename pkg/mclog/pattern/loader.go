package pattern

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mclog/mclog-go/internal/safefile"
	"github.com/mclog/mclog-go/pkg/mclog/event"
)

// sanitizePathError strips the path from an *os.PathError so messages
// do not echo file system locations.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

const (
	// MaxRuleFileSize is the maximum allowed size for a rule file (1MB).
	MaxRuleFileSize = 1 * 1024 * 1024

	// MaxPatternLength is the maximum allowed length for one regex (512 bytes).
	MaxPatternLength = 512

	// MaxRuleCount is the maximum number of patterns plus exclusions.
	MaxRuleCount = 1000

	// SupportedVersion is the currently supported rule file format version.
	SupportedVersion = 1
)

// Load reads, parses and validates a rule file.
// Symlinks, FIFOs and other non-regular files are rejected.
//
// Example:
//
//	rf, err := pattern.Load("rules.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load rule file: %v", err)
//	}
func Load(path string) (*RuleFile, error) {
	data, err := safefile.ReadAll(path, MaxRuleFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", sanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a rule file from a byte slice.
func LoadBytes(data []byte) (*RuleFile, error) {
	if len(data) == 0 {
		return nil, errors.New("rule file is empty")
	}
	if len(data) > MaxRuleFileSize {
		return nil, fmt.Errorf("rule file too large: %d bytes (max %d)", len(data), MaxRuleFileSize)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rf.Validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

// Validate checks the rule file's structure: version, rule count, required
// fields, unique ids per section, known event types and regex length.
// Regular expressions are compiled later, by NewRegexParser and
// NewExclusionSet.
func (rf *RuleFile) Validate() error {
	if rf.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", rf.Version, SupportedVersion),
		}
	}

	total := len(rf.Patterns) + len(rf.Exclusions)
	if total == 0 {
		return &ValidationError{
			Field:   "patterns",
			Message: "at least one pattern or exclusion is required",
		}
	}
	if total > MaxRuleCount {
		return &ValidationError{
			Field:   "patterns",
			Message: fmt.Sprintf("too many rules (%d), maximum allowed is %d", total, MaxRuleCount),
		}
	}

	seen := make(map[string]int, len(rf.Patterns))
	for i, p := range rf.Patterns {
		if err := checkRule("patterns", i, p.ID, p.Regex, seen); err != nil {
			return err
		}
		if p.EventType == "" {
			return &PatternError{Section: "patterns", Index: i, ID: p.ID, Field: "event_type", Message: "event_type is required"}
		}
		if !event.Type(p.EventType).Valid() {
			return &PatternError{Section: "patterns", Index: i, ID: p.ID, Field: "event_type",
				Message: fmt.Sprintf("unknown event type %q", p.EventType)}
		}
	}

	seen = make(map[string]int, len(rf.Exclusions))
	for i, x := range rf.Exclusions {
		if err := checkRule("exclusions", i, x.ID, x.Regex, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkRule(section string, i int, id, regex string, seen map[string]int) error {
	if id == "" {
		return &PatternError{Section: section, Index: i, Field: "id", Message: "id is required"}
	}
	if regex == "" {
		return &PatternError{Section: section, Index: i, ID: id, Field: "regex", Message: "regex is required"}
	}
	if prev, ok := seen[id]; ok {
		return &PatternError{Section: section, Index: i, ID: id, Field: "id",
			Message: fmt.Sprintf("duplicate id (previously defined at %s[%d])", section, prev)}
	}
	seen[id] = i
	if len(regex) > MaxPatternLength {
		return &PatternError{Section: section, Index: i, ID: id, Field: "regex",
			Message: fmt.Sprintf("pattern too long: %d bytes (max %d)", len(regex), MaxPatternLength)}
	}
	return nil
}
