package props

import (
	"maps"
	"slices"
)

// Set is the unordered base store: a flat map from dotted names to values
// with a hierarchical view derived from the names. The zero value is an
// empty set ready to use. A Set is not safe for concurrent mutation.
type Set struct {
	values map[string]Value
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{values: map[string]Value{}}
}

// Source is a container whose entries can be flattened into another
// container. It is implemented by *Set and *List.
type Source interface {
	sourceEntries() []entry
}

type entry struct {
	name       string
	value      Value
	comment    string
	hasComment bool
}

// change lists the names a base-layer mutation touched, in the order the
// writes were applied.
type change struct {
	removed []string
	written []string
}

// payload is a normalised mutation argument: a single value stored at the
// target name, or the entries of a borrowed container flattened beneath it.
type payload struct {
	value   Value
	entries []entry
	nested  bool
}

func newPayload(op, name string, v any) (payload, error) {
	if src, ok := v.(Source); ok {
		entries, err := entriesOf(op, name, src)
		if err != nil {
			return payload{}, err
		}
		return payload{entries: entries, nested: true}, nil
	}
	value, err := ValueOf(v)
	if err != nil {
		return payload{}, wrapProperty(op, name, err)
	}
	return payload{value: value}, nil
}

// entriesOf returns the entries of src, rejecting a nil container so that
// it cannot clear name.
func entriesOf(op, name string, src Source) ([]entry, error) {
	switch c := src.(type) {
	case nil:
		return nil, invalid(op, name, "nil source")
	case *Set:
		if c == nil {
			return nil, invalid(op, name, "nil *Set")
		}
	case *List:
		if c == nil {
			return nil, invalid(op, name, "nil *List")
		}
	}
	return src.sourceEntries(), nil
}

func (p payload) targets(name string) []entry {
	if !p.nested {
		return []entry{{name: name, value: p.value}}
	}
	out := make([]entry, len(p.entries))
	for i, e := range p.entries {
		e.name = joinPath(name, e.name)
		out[i] = e
	}
	return out
}

func (s *Set) init() {
	if s.values == nil {
		s.values = map[string]Value{}
	}
}

// Set replaces whatever is stored at name. A *Set or *List value is
// flattened: each of its entries is stored beneath name and nothing of the
// argument is retained.
func (s *Set) Set(name string, value any) error {
	p, err := newPayload("set", name, value)
	if err != nil {
		return err
	}
	_, err = s.set("set", name, p)
	return err
}

// Add appends value to the array stored at name, creating the entry when
// name is new. The appended kind must match the stored kind.
func (s *Set) Add(name string, value any) error {
	p, err := newPayload("add", name, value)
	if err != nil {
		return err
	}
	if !validName(name) {
		return invalid("add", name, "malformed name")
	}
	_, err = s.add("add", p.targets(name))
	return err
}

// Remove deletes name and everything beneath it. Removing an absent name
// is a no-op.
func (s *Set) Remove(name string) {
	s.remove(name)
}

// Combine adds every entry of src to s using Add semantics, so repeated
// names accumulate. Nothing is changed when any entry conflicts.
func (s *Set) Combine(src Source) error {
	entries, err := entriesOf("combine", "", src)
	if err != nil {
		return err
	}
	_, err = s.add("combine", entries)
	return err
}

// Copy stores the value found at name in src under dest, replacing what dest
// held. Comments are not copied.
func (s *Set) Copy(dest string, src Source, name string) error {
	p, err := extract(src, name)
	if err != nil {
		return err
	}
	_, err = s.set("copy", dest, p)
	return err
}

// DeepCopy returns a Set sharing no state with s.
func (s *Set) DeepCopy() *Set {
	out := NewSet()
	for name, value := range s.values {
		out.values[name] = value.clone()
	}
	return out
}

func (s *Set) set(op, name string, p payload) (change, error) {
	if !validName(name) {
		return change{}, invalid(op, name, "malformed name")
	}
	if err := s.checkAncestors(op, name); err != nil {
		return change{}, err
	}
	targets := p.targets(name)

	s.init()
	removed := s.remove(name)
	written := make([]string, 0, len(targets))
	for _, t := range targets {
		s.values[t.name] = t.value.clone()
		written = append(written, t.name)
	}
	return change{removed: removed, written: written}, nil
}

func (s *Set) add(op string, targets []entry) (change, error) {
	for _, t := range targets {
		if err := s.checkAppend(op, t); err != nil {
			return change{}, err
		}
	}

	s.init()
	written := make([]string, 0, len(targets))
	for _, t := range targets {
		existing, ok := s.values[t.name]
		if !ok {
			s.values[t.name] = t.value.clone()
		} else {
			joined, _ := existing.concat(t.value)
			s.values[t.name] = joined
		}
		written = append(written, t.name)
	}
	return change{written: written}, nil
}

func (s *Set) checkAppend(op string, t entry) error {
	if !validName(t.name) {
		return invalid(op, t.name, "malformed name")
	}
	if err := s.checkAncestors(op, t.name); err != nil {
		return err
	}
	if existing, ok := s.values[t.name]; ok {
		if existing.Kind() != t.value.Kind() {
			return mismatch(op, t.name, existing.Kind(), t.value.Kind())
		}
		return nil
	}
	if s.IsSet(t.name) {
		return notLeaf(op, t.name)
	}
	return nil
}

func (s *Set) checkAncestors(op, name string) error {
	for _, parent := range ancestors(name) {
		if _, ok := s.values[parent]; ok {
			return invalid(op, name, "%q is not a property set", parent)
		}
	}
	return nil
}

func (s *Set) remove(name string) []string {
	var removed []string
	if _, ok := s.values[name]; ok {
		removed = append(removed, name)
	}
	for key := range s.values {
		if isBeneath(key, name) {
			removed = append(removed, key)
		}
	}
	slices.Sort(removed)
	for _, key := range removed {
		delete(s.values, key)
	}
	return removed
}

func (s *Set) hasLeaf(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s *Set) sortedNames() []string {
	return slices.Sorted(maps.Keys(s.values))
}

func (s *Set) sourceEntries() []entry {
	if s == nil {
		return nil
	}
	names := s.sortedNames()
	out := make([]entry, len(names))
	for i, name := range names {
		out[i] = entry{name: name, value: s.values[name]}
	}
	return out
}

// extract finds name in src as either a leaf or a subtree; subtree entries
// come back relative to name with their comments dropped.
func extract(src Source, name string) (payload, error) {
	entries, err := entriesOf("copy", name, src)
	if err != nil {
		return payload{}, err
	}
	var sub []entry
	for _, e := range entries {
		if e.name == name {
			return payload{value: e.value}, nil
		}
		if isBeneath(e.name, name) {
			sub = append(sub, entry{name: relative(e.name, name), value: e.value})
		}
	}
	if len(sub) == 0 {
		return payload{}, notFound("copy", name)
	}
	return payload{entries: sub, nested: true}, nil
}
