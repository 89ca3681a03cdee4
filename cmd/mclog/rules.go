package main

import (
	"fmt"

	"github.com/mclog/mclog-go/pkg/mclog"
	"github.com/mclog/mclog-go/pkg/mclog/pattern"
)

// loadRules turns a rule file into ingest options. Its patterns run before
// the built-in parser and its exclusions extend the default list.
// Returns no options when path is empty.
func loadRules(path string) ([]mclog.IngestOption, error) {
	if path == "" {
		return nil, nil
	}

	rf, err := pattern.Load(path)
	if err != nil {
		// Error from pattern package is already sanitized (no path)
		return nil, fmt.Errorf("rules file: %w", err)
	}
	opts, err := pattern.IngestOptions(rf)
	if err != nil {
		return nil, fmt.Errorf("rules file: %w", err)
	}
	return opts, nil
}
