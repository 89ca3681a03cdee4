// Package pattern loads user rule files that extend the built-in log
// recognizers: extra death exclusions and extra line patterns for servers
// whose plugins log joins, quits or chat in their own format.
package pattern

// RuleFile is the structure of a YAML rule file.
//
// Example:
//
//	version: 1
//	exclusions:
//	  - id: afk
//	    regex: 'is now AFK'
//	patterns:
//	  - id: essentials_join
//	    event_type: join
//	    regex: '\]: (?P<player>\S+) joined the server'
type RuleFile struct {
	// Version is the rule file format version. Only version 1 is supported.
	Version int `yaml:"version"`

	// Exclusions are matched against death candidate messages; a match
	// drops the candidate.
	Exclusions []Exclusion `yaml:"exclusions"`

	// Patterns recognize additional log lines.
	Patterns []Pattern `yaml:"patterns"`
}

// Exclusion is one death exclusion rule.
type Exclusion struct {
	ID    string `yaml:"id"`
	Regex string `yaml:"regex"`
}

// Pattern is one line recognizer.
//
// Named capture groups fill event fields: player, uuid, message and
// advancement. Other groups are ignored.
type Pattern struct {
	// ID is unique within a rule file.
	ID string `yaml:"id"`

	// EventType is one of the event types: identity, server_ready, join,
	// quit, chat, advancement, death.
	EventType string `yaml:"event_type"`

	// Regex is matched against the whole raw line.
	Regex string `yaml:"regex"`
}
