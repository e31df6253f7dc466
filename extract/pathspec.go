package extract

import (
	"github.com/yairfalse/merkki/event"
	"github.com/yairfalse/merkki/types"
)

type stepKind int

const (
	stepField stepKind = iota
	stepIndex
	stepExpand
)

// Step is one element of a path: a map key, a list index, or an
// expand marker that fans out over every item of a list.
type Step struct {
	kind  stepKind
	key   string
	index int
}

// Field makes a step that descends into a map key.
func Field(key string) Step { return Step{kind: stepField, key: key} }

// Index makes a step that picks one list item.
func Index(i int) Step { return Step{kind: stepIndex, index: i} }

// Expand makes a step that iterates every item of a list, emitting one
// resource per item.
func Expand() Step { return Step{kind: stepExpand} }

// PathSpec declares where a resource identifier lives inside an event
// body: a section, then an ordered path down the tree.
type PathSpec struct {
	Section event.Section
	Type    types.ResourceType
	Path    []Step
}

// Resolve navigates ev along the path and returns the identifiers found,
// in source order. Any missing key, out-of-range index, or non-scalar
// terminal yields an empty result, never an error: partial or malformed
// events must not abort a batch.
func (p PathSpec) Resolve(ev event.RawEvent) []string {
	return resolve(ev.Section(p.Section), p.Path)
}

func resolve(v event.Value, steps []Step) []string {
	for i, s := range steps {
		switch s.kind {
		case stepField:
			child, ok := v.Field(s.key)
			if !ok {
				return nil
			}
			v = child
		case stepIndex:
			child, ok := v.Index(s.index)
			if !ok {
				return nil
			}
			v = child
		case stepExpand:
			var ids []string
			for _, item := range v.Items() {
				ids = append(ids, resolve(item, steps[i+1:])...)
			}
			return ids
		}
	}
	if id, ok := v.Text(); ok {
		return []string{id}
	}
	return nil
}
