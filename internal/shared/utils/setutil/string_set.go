// Package setutil provides an insertion-ordered set for id collections.
package setutil

// StringSet is a set of string ids that remembers insertion order, so
// callers iterating it get deterministic results.
type StringSet struct {
	items map[string]struct{}
	order []string
}

// NewStringSet creates a set holding the given ids. Empty strings are skipped.
func NewStringSet(ids ...string) *StringSet {
	s := &StringSet{items: make(map[string]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

// Add inserts id unless it is empty or already present.
func (s *StringSet) Add(id string) {
	if id == "" {
		return
	}
	if _, ok := s.items[id]; ok {
		return
	}
	s.items[id] = struct{}{}
	s.order = append(s.order, id)
}

// AddAll inserts every id.
func (s *StringSet) AddAll(ids []string) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Remove deletes id if present.
func (s *StringSet) Remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has returns true if the id exists in the set.
func (s *StringSet) Has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// ToSlice returns the ids in insertion order. The result is never nil.
func (s *StringSet) ToSlice() []string {
	result := make([]string, len(s.order))
	copy(result, s.order)
	return result
}

// Len returns the number of elements in the set.
func (s *StringSet) Len() int {
	return len(s.items)
}
