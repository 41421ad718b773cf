package toc

import (
	"maps"
	"slices"
)

// Set is an unordered collection of node IDs. The zero value is an empty,
// read-only set; use [NewSet] or make to get a writable one.
type Set map[string]struct{}

// NewSet returns a set containing ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Remove deletes id. Removing a missing ID is a no-op.
func (s Set) Remove(id string) { delete(s, id) }

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s Set) Len() int { return len(s) }

// AddAll inserts every ID of other.
func (s Set) AddAll(other Set) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Clone returns an independent copy. Cloning a nil set yields an empty,
// writable set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// SubsetOf reports whether every ID of s is also in other.
func (s Set) SubsetOf(other Set) bool {
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other contain the same IDs.
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// Sorted returns the IDs in ascending lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
