// Package charset provides the mutable character sets regex patterns are
// built from, plus the registry of named character classes.
package charset

import (
	"fmt"
	"sort"
)

// Set is an unordered set of runes built from single characters and
// inclusive ranges.
type Set struct {
	runes map[rune]struct{}
}

func New() *Set {
	return &Set{runes: map[rune]struct{}{}}
}

// Of builds a set from the given runes. Mostly useful in tests.
func Of(rs ...rune) *Set {
	s := New()
	for _, r := range rs {
		s.Add(r)
	}
	return s
}

func (s *Set) Add(r rune) {
	s.runes[r] = struct{}{}
}

// AddRange adds every rune in [lo, hi]. A descending range is rejected
// rather than silently producing an empty contribution.
func (s *Set) AddRange(lo, hi rune) error {
	if lo > hi {
		return fmt.Errorf("descending range %q-%q", lo, hi)
	}
	for r := lo; r <= hi; r++ {
		s.runes[r] = struct{}{}
	}
	return nil
}

func (s *Set) Contains(r rune) bool {
	_, ok := s.runes[r]
	return ok
}

func (s *Set) Len() int { return len(s.runes) }

func (s *Set) Copy() *Set {
	c := New()
	for r := range s.runes {
		c.runes[r] = struct{}{}
	}
	return c
}

// Union adds every rune of o to s.
func (s *Set) Union(o *Set) {
	for r := range o.runes {
		s.runes[r] = struct{}{}
	}
}

// Difference returns a new set holding s \ o.
func (s *Set) Difference(o *Set) *Set {
	d := New()
	for r := range s.runes {
		if !o.Contains(r) {
			d.runes[r] = struct{}{}
		}
	}
	return d
}

// Runes returns the members in ascending order.
func (s *Set) Runes() []rune {
	out := make([]rune, 0, len(s.runes))
	for r := range s.runes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Set) String() string {
	return string(s.Runes())
}

// Collection maps character-class names to their sets. Resolution hands out
// copies, so a caller can never alias the registry's live data.
type Collection struct {
	classes map[string]*Set
	names   []string
}

func NewCollection() *Collection {
	return &Collection{classes: map[string]*Set{}}
}

// Define registers name with a copy of set. Redefining a name replaces the
// previous set.
func (c *Collection) Define(name string, set *Set) {
	if _, ok := c.classes[name]; !ok {
		c.names = append(c.names, name)
	}
	c.classes[name] = set.Copy()
}

// Resolve returns a fresh copy of the named class, or false if the name is
// not defined.
func (c *Collection) Resolve(name string) (*Set, bool) {
	set, ok := c.classes[name]
	if !ok {
		return nil, false
	}
	return set.Copy(), true
}

func (c *Collection) Has(name string) bool {
	_, ok := c.classes[name]
	return ok
}

// Names returns the class names in definition order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
