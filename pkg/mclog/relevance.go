package mclog

import "strings"

// Class is the outcome of the relevance filter for one line.
type Class int

const (
	// ClassIrrelevant lines are dropped.
	ClassIrrelevant Class = iota
	// ClassIdentity lines carry a name mapping and register the name.
	ClassIdentity
	// ClassServerMarker lines are the startup banner; always kept.
	ClassServerMarker
	// ClassRelevant lines mention a known display name.
	ClassRelevant
)

func (c Class) String() string {
	switch c {
	case ClassIdentity:
		return "identity"
	case ClassServerMarker:
		return "server_marker"
	case ClassRelevant:
		return "relevant"
	default:
		return "irrelevant"
	}
}

// Relevance is the set of display names worth keeping lines for.
// It only grows while a source is processed.
type Relevance struct {
	names map[string]struct{}
	order []string
}

// NewRelevance returns an empty relevance set.
func NewRelevance() *Relevance {
	return &Relevance{names: make(map[string]struct{})}
}

// Classify decides whether line is kept. ev is the parsed event for the
// line, or nil when no parser recognized it.
//
// Name matching is plain substring containment over the whole line, so a
// short name such as "Al" also keeps lines mentioning "Alice" or "Altar".
// Downstream attribution only acts on parsed player fields, so the extra
// lines cost time but do not produce wrong records.
func (r *Relevance) Classify(line string, ev *Event) Class {
	if ev != nil {
		switch ev.Type {
		case EventIdentity:
			r.Add(ev.PlayerName)
			return ClassIdentity
		case EventServerReady:
			return ClassServerMarker
		}
	}
	for _, name := range r.order {
		if strings.Contains(line, name) {
			return ClassRelevant
		}
	}
	return ClassIrrelevant
}

// Add marks name as relevant.
func (r *Relevance) Add(name string) {
	if name == "" {
		return
	}
	if _, ok := r.names[name]; ok {
		return
	}
	r.names[name] = struct{}{}
	r.order = append(r.order, name)
}

// Names returns the known names in the order they were first seen.
func (r *Relevance) Names() []string {
	return r.order
}
