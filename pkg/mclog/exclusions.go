package mclog

import (
	"regexp"
	"strings"
)

// Excluder decides whether a death candidate message is noise rather than
// a death.
type Excluder interface {
	Excludes(message string) bool
}

// ExcluderFunc is an adapter to allow ordinary functions to be used as Excluders.
type ExcluderFunc func(message string) bool

// Excludes implements the Excluder interface.
func (f ExcluderFunc) Excludes(message string) bool {
	return f(message)
}

// DefaultExclusionPatterns match "]: <name> <message>" lines that are not
// deaths: announcements, connection noise, anti-cheat warnings, AFK toggles.
var DefaultExclusionPatterns = []string{
	`made the advancement`,
	`has reached`,
	`joined the game`,
	`lost connection`,
	`moved too quickly`,
	`has completed`,
	`has just earned`,
	`moved wrongly`,
	`issued server command`,
	`was kicked`,
	`is now sleeping`,
	`forced -?\d+`,
	`\(\d+`,
	`is now AFK`,
	`is no longer AFK`,
}

var defaultExclusions = regexp.MustCompile(strings.Join(DefaultExclusionPatterns, "|"))

// DefaultExclusions returns the built-in death exclusion list.
func DefaultExclusions() Excluder {
	return ExcluderFunc(defaultExclusions.MatchString)
}

// anyExcluder excludes a message when any member does.
type anyExcluder []Excluder

func (a anyExcluder) Excludes(message string) bool {
	for _, e := range a {
		if e != nil && e.Excludes(message) {
			return true
		}
	}
	return false
}
