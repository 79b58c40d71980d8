package automata

import "slices"

// Hashable Key contract for HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// IntSet A set of dense state indices usable as an interning key.
type IntSet interface {
	Hashable

	GetArray() []int

	Size() int
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet Immutable, pre-hashed set of state indices. Subset
// construction freezes each discovered NFA-state set into one of these and
// uses it as the interning key for the corresponding DFA state; the
// asynchronous product does the same with member-state tuples (where the
// values are ordered per member, not sorted).
type FrozenIntSet struct {
	values   []int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64) *FrozenIntSet {
	return &FrozenIntSet{values: values, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals Structural comparison; equal hashes alone must not merge distinct
// sets, or two different state sets would intern to one DFA state.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	is, ok := other.(IntSet)
	if !ok {
		return false
	}
	if f.hashCode != is.Hash() {
		return false
	}
	return slices.Equal(f.values, is.GetArray())
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

var _ IntSet = &StateSet{}

// StateSet Mutable scratch set of state indices with an incrementally
// maintained order-insensitive hash. One instance is reused across the whole
// subset construction; Freeze snapshots the current members.
type StateSet struct {
	inner       map[int]struct{}
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet() *StateSet {
	return &StateSet{
		inner: make(map[int]struct{}),
	}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = uint64(len(s.inner))
	for k := range s.inner {
		s.hashCode += uint64(mix32(k))
	}
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	is, ok := other.(IntSet)
	if !ok {
		return false
	}
	if s.Hash() != is.Hash() {
		return false
	}
	return slices.Equal(s.GetArray(), is.GetArray())
}

// GetArray Returns the members in ascending index order.
func (s *StateSet) GetArray() []int {
	keys := make([]int, 0, len(s.inner))
	for k := range s.inner {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *StateSet) Size() int {
	return len(s.inner)
}

func (s *StateSet) Add(state int) {
	if _, ok := s.inner[state]; ok {
		return
	}
	s.inner[state] = struct{}{}
	s.hashUpdated = false
}

func (s *StateSet) Clear() {
	clear(s.inner)
	s.hashUpdated = false
}

// Freeze Snapshots the set into an immutable, canonically ordered key.
func (s *StateSet) Freeze() *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash())
}
