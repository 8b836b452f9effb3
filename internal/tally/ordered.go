package tally

// OrderedSet keeps distinct category IDs in first-seen order
type OrderedSet struct {
	items []uint64
	seen  map[uint64]struct{}
}

// NewOrderedSet creates an empty set
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[uint64]struct{})}
}

// Add inserts id unless already present. It reports whether id was new.
func (s *OrderedSet) Add(id uint64) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, id)
	return true
}

// Contains reports whether id is in the set
func (s *OrderedSet) Contains(id uint64) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of distinct IDs
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the IDs in insertion order
func (s *OrderedSet) Items() []uint64 {
	out := make([]uint64, len(s.items))
	copy(out, s.items)
	return out
}
