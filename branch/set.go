package branch

import "sort"

// Set is an ordered collection of ground-truth branch labels. Parsers
// return their accepted labels as a Set and the caller merges them, so no
// shared mutable state crosses parser boundaries.
type Set struct {
	seen  map[string]struct{}
	order []string
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add registers a label. Duplicates are ignored; insertion order is kept.
func (s *Set) Add(label string) {
	if label == "" {
		return
	}
	if _, ok := s.seen[label]; ok {
		return
	}
	s.seen[label] = struct{}{}
	s.order = append(s.order, label)
}

// Has reports exact membership.
func (s *Set) Has(label string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[label]
	return ok
}

// Merge adds every label from other, preserving this set's order first.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, label := range other.order {
		s.Add(label)
	}
}

// All returns labels in insertion order. The returned slice is shared;
// callers must not mutate it.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	return s.order
}

// Sorted returns a sorted copy of the labels.
func (s *Set) Sorted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
