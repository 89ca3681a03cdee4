package pattern

import (
	"fmt"
	"regexp"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// ExclusionSet drops death candidates whose message matches any of its rules.
type ExclusionSet struct {
	rules []*regexp.Regexp
	ids   []string
}

// NewExclusionSet compiles the exclusions of rf. The built-in defaults are
// not included; see DefaultExclusions.
func NewExclusionSet(rf *RuleFile) (*ExclusionSet, error) {
	if rf == nil {
		return nil, fmt.Errorf("rule file is nil")
	}
	set := &ExclusionSet{}
	for i, x := range rf.Exclusions {
		re, err := regexp.Compile(x.Regex)
		if err != nil {
			return nil, &PatternError{
				Section: "exclusions",
				Index:   i,
				ID:      x.ID,
				Field:   "regex",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
				Cause:   err,
			}
		}
		set.rules = append(set.rules, re)
		set.ids = append(set.ids, x.ID)
	}
	return set, nil
}

// DefaultExclusions returns the built-in exclusion list as a rule file
// section, e.g. to write out a starting rules file.
func DefaultExclusions() []Exclusion {
	out := make([]Exclusion, len(mclog.DefaultExclusionPatterns))
	for i, re := range mclog.DefaultExclusionPatterns {
		out[i] = Exclusion{ID: fmt.Sprintf("default_%d", i+1), Regex: re}
	}
	return out
}

// Excludes implements mclog.Excluder.
func (s *ExclusionSet) Excludes(message string) bool {
	_, ok := s.Match(message)
	return ok
}

// Match returns the id of the first rule matching message.
func (s *ExclusionSet) Match(message string) (string, bool) {
	if s == nil {
		return "", false
	}
	for i, re := range s.rules {
		if re.MatchString(message) {
			return s.ids[i], true
		}
	}
	return "", false
}

// Len returns the number of rules.
func (s *ExclusionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

var _ mclog.Excluder = (*ExclusionSet)(nil)
