package mclog

import (
	"sort"
	"time"
)

// NameObservation records that a stable id was seen under a display name.
type NameObservation struct {
	ID        string
	Name      string
	Timestamp time.Time
}

// Resolver maps display names to stable identifiers within one source.
//
// Resolution happens at time of use: a name is resolved against the
// mappings recorded so far. Names that were never mapped pass through
// unchanged, so offline or scripted players still get attributed under
// their display name.
type Resolver struct {
	byName       map[string]string
	ids          map[string]struct{}
	observations []NameObservation
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		byName: make(map[string]string),
		ids:    make(map[string]struct{}),
	}
}

// RecordMapping associates name with id. The latest mapping for a name wins.
// When ts is non-zero the association is also kept as a NameObservation.
func (r *Resolver) RecordMapping(name, id string, ts time.Time) {
	r.byName[name] = id
	r.ids[id] = struct{}{}
	if !ts.IsZero() {
		r.observations = append(r.observations, NameObservation{ID: id, Name: name, Timestamp: ts})
	}
}

// Resolve returns the stable id for name, or name itself when unmapped.
// Resolving an id that is not also a display name returns the id.
func (r *Resolver) Resolve(name string) string {
	if id, ok := r.byName[name]; ok {
		return id
	}
	return name
}

// Lookup returns the id mapped to name, if any.
func (r *Resolver) Lookup(name string) (string, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Known reports whether id was recorded by some mapping.
func (r *Resolver) Known(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Observations returns the timestamped mappings in the order they were recorded.
func (r *Resolver) Observations() []NameObservation {
	return r.observations
}

// LatestNames picks, for every id, the display name with the latest
// observation timestamp. Equal timestamps go to the later observation.
func LatestNames(observations []NameObservation) map[string]string {
	sorted := make([]NameObservation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	names := make(map[string]string, len(sorted))
	for _, o := range sorted {
		names[o.ID] = o.Name
	}
	return names
}
