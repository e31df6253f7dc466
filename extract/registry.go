package extract

import (
	"fmt"
	"sort"

	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/types"
)

// ExtractFunc is a custom extraction procedure. It receives the full
// event and returns references directly; panics are contained at the
// call site and reported as extraction errors.
type ExtractFunc func(ev event.RawEvent) []types.ResourceRef

// Entry produces resource references from one event.
type Entry interface {
	// MatchesSource reports whether the entry applies to an event from
	// the given service. Entries without a source filter match any.
	MatchesSource(source string) bool
	extract(ev event.RawEvent) []types.ResourceRef
}

// PathEntry extracts by following a PathSpec.
type PathEntry struct {
	Spec   PathSpec
	Source string // optional eventSource filter, e.g. "eks.amazonaws.com"
}

// MatchesSource implements Entry.
func (e PathEntry) MatchesSource(source string) bool {
	return e.Source == "" || e.Source == source
}

func (e PathEntry) extract(ev event.RawEvent) []types.ResourceRef {
	ids := e.Spec.Resolve(ev)
	refs := make([]types.ResourceRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, MakeRef(ev, e.Spec.Type, id))
	}
	return refs
}

// FuncEntry extracts with a custom function.
type FuncEntry struct {
	Source string
	Fn     ExtractFunc
}

// MatchesSource implements Entry.
func (e FuncEntry) MatchesSource(source string) bool {
	return e.Source == "" || e.Source == source
}

func (e FuncEntry) extract(ev event.RawEvent) []types.ResourceRef {
	return e.Fn(ev)
}

// MakeRef builds a reference for one identifier, carrying the event's
// origin metadata.
func MakeRef(ev event.RawEvent, rt types.ResourceType, id string) types.ResourceRef {
	return types.ResourceRef{
		Type:      rt,
		ID:        id,
		EventName: ev.Name,
		Principal: ev.Principal,
		EventTime: ev.Time,
	}
}

// Registry maps event names to extraction entries. Built-ins are seeded
// at construction; Register appends, never replaces, so built-ins and
// caller entries for the same event all run, in registration order.
type Registry struct {
	entries map[string][]Entry
}

// NewRegistry builds a registry seeded with the built-in registrations.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string][]Entry)}
	registerBuiltins(r)
	return r
}

// Register adds an entry under an event name.
func (r *Registry) Register(eventName string, e Entry) {
	r.entries[eventName] = append(r.entries[eventName], e)
}

// Resolve returns all entries registered for an event name, empty when
// the name is unknown.
func (r *Registry) Resolve(eventName string) []Entry {
	return r.entries[eventName]
}

// IsCreationEvent reports whether the event name has at least one
// registered entry. A pure membership test: it never inspects the body,
// so malformed payloads cannot affect classification.
func (r *Registry) IsCreationEvent(eventName string) bool {
	return len(r.entries[eventName]) > 0
}

// EventNames returns every registered event name, sorted.
func (r *Registry) EventNames() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract runs every entry matching the event's name and source, in
// registration order, concatenating references. A panicking custom
// extractor contributes nothing and is reported as an extraction error.
func (r *Registry) Extract(ev event.RawEvent) ([]types.ResourceRef, []error) {
	var refs []types.ResourceRef
	var errs []error

	for _, entry := range r.entries[ev.Name] {
		if !entry.MatchesSource(ev.Source) {
			continue
		}
		extracted, err := runEntry(entry, ev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		refs = append(refs, extracted...)
	}

	return refs, errs
}

func runEntry(entry Entry, ev event.RawEvent) (refs []types.ResourceRef, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			refs = nil
			err = fmt.Errorf("extractor for %s panicked: %v", ev.Name, rec)
		}
	}()
	return entry.extract(ev), nil
}
