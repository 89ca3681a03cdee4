package pattern

import (
	"fmt"

	"github.com/mclog/mclog-go/pkg/mclog"
)

// IngestOptions compiles rf into ingest options: its patterns run before the
// default parser and its exclusions extend the default exclusion list.
// Sections that are empty add no option.
func IngestOptions(rf *RuleFile) ([]mclog.IngestOption, error) {
	if rf == nil {
		return nil, fmt.Errorf("rule file is nil")
	}
	var opts []mclog.IngestOption

	if len(rf.Patterns) > 0 {
		p, err := NewRegexParser(rf)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mclog.WithParsers(p))
	}
	if len(rf.Exclusions) > 0 {
		set, err := NewExclusionSet(rf)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mclog.WithExclusions(set))
	}
	return opts, nil
}
