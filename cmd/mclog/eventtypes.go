package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mclog/mclog-go/pkg/mclog"
	"github.com/mclog/mclog-go/pkg/mclog/event"
)

// ValidEventTypes maps --types names to event types.
var ValidEventTypes = func() map[string]mclog.EventType {
	m := make(map[string]mclog.EventType, len(event.Types))
	for _, t := range event.Types {
		m[string(t)] = t
	}
	return m
}()

// ValidEventTypeNames returns the accepted type names, sorted.
func ValidEventTypeNames() []string {
	names := make([]string, 0, len(ValidEventTypes))
	for name := range ValidEventTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeEventTypes trims, lowercases and de-duplicates type names,
// keeping first-seen order. Empty or unknown names are an error.
func NormalizeEventTypes(names []string) ([]mclog.EventType, error) {
	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[mclog.EventType]bool, len(names))
	var out []mclog.EventType
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			return nil, fmt.Errorf("empty event type (valid: %s)", strings.Join(ValidEventTypeNames(), ", "))
		}
		t, ok := ValidEventTypes[name]
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (valid: %s)", raw, strings.Join(ValidEventTypeNames(), ", "))
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// RejectOverlap errors when a type is both included and excluded.
func RejectOverlap(includes, excludes []mclog.EventType) error {
	excluded := make(map[mclog.EventType]bool, len(excludes))
	for _, t := range excludes {
		excluded[t] = true
	}
	for _, t := range includes {
		if excluded[t] {
			return fmt.Errorf("event type %q is both included and excluded", t)
		}
	}
	return nil
}
