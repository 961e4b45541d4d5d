package domain

import (
	"encoding/json"
	"sort"
)

// IntSet is an unordered set of ints serialized as a sorted JSON array.
type IntSet map[int]struct{}

func NewIntSet(values ...int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s IntSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Add reports whether v was not already present.
func (s IntSet) Add(v int) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s IntSet) Remove(v int) {
	delete(s, v)
}

func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (s IntSet) Clone() IntSet {
	out := make(IntSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IntSet) UnmarshalJSON(b []byte) error {
	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = NewIntSet(values...)
	return nil
}

// StringSet is an unordered set of strings serialized as a sorted JSON array.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s StringSet) Add(v string) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(b []byte) error {
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
