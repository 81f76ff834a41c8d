package props

import (
	"slices"
	"strings"
)

// Value returns the value stored at name. Names that only exist as a
// property set fail with ErrTypeMismatch.
func (s *Set) Value(name string) (Value, error) {
	if v, ok := s.values[name]; ok {
		return v, nil
	}
	if s.IsSet(name) {
		return nil, notLeaf("get", name)
	}
	return nil, notFound("get", name)
}

// Exists reports whether name is a stored value or a property set.
func (s *Set) Exists(name string) bool {
	return s.hasLeaf(name) || s.IsSet(name)
}

// IsSet reports whether at least one stored name lies beneath name.
func (s *Set) IsSet(name string) bool {
	for key := range s.values {
		if isBeneath(key, name) {
			return true
		}
	}
	return false
}

// IsArray reports whether name holds more than one value.
func (s *Set) IsArray(name string) bool {
	v, ok := s.values[name]
	return ok && v.IsArray()
}

// TypeOf returns the kind stored at name.
func (s *Set) TypeOf(name string) (Kind, error) {
	v, err := s.Value(name)
	if err != nil {
		return KindInvalid, err
	}
	return v.Kind(), nil
}

// ValueCount returns the number of values stored at name.
func (s *Set) ValueCount(name string) (int, error) {
	v, err := s.Value(name)
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}

// Len returns the number of stored names (leaves).
func (s *Set) Len() int {
	return len(s.values)
}

// Names returns every name, property sets included, sorted. With
// topLevelOnly only the first path segments are returned.
func (s *Set) Names(topLevelOnly bool) []string {
	seen := map[string]struct{}{}
	for key := range s.values {
		if topLevelOnly {
			seen[topLevel(key)] = struct{}{}
			continue
		}
		seen[key] = struct{}{}
		for _, parent := range ancestors(key) {
			seen[parent] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// ParamNames returns the names holding values, sorted. With topLevelOnly
// names beneath a property set are skipped.
func (s *Set) ParamNames(topLevelOnly bool) []string {
	var out []string
	for _, key := range s.sortedNames() {
		if topLevelOnly && strings.Contains(key, Separator) {
			continue
		}
		out = append(out, key)
	}
	return out
}

// SetNames returns the names of property sets, sorted.
func (s *Set) SetNames(topLevelOnly bool) []string {
	seen := map[string]struct{}{}
	for key := range s.values {
		parents := ancestors(key)
		if len(parents) == 0 {
			continue
		}
		if topLevelOnly {
			seen[parents[0]] = struct{}{}
			continue
		}
		for _, parent := range parents {
			seen[parent] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// NameCount returns len(Names(topLevelOnly)).
func (s *Set) NameCount(topLevelOnly bool) int {
	return len(s.Names(topLevelOnly))
}

// Sub returns a detached copy of the property set at name with names
// relative to it.
func (s *Set) Sub(name string) (*Set, error) {
	if s.hasLeaf(name) {
		return nil, notSet("sub", name)
	}
	out := NewSet()
	for key, value := range s.values {
		if isBeneath(key, name) {
			out.values[relative(key, name)] = value.clone()
		}
	}
	if len(out.values) == 0 {
		return nil, notFound("sub", name)
	}
	return out, nil
}

// ToMap renders the set as nested maps keyed by path segment. Single values
// appear as scalars and arrays as []any.
func (s *Set) ToMap() map[string]any {
	return toMap(s.sourceEntries())
}

func toMap(entries []entry) map[string]any {
	root := map[string]any{}
	for _, e := range entries {
		segments := strings.Split(e.name, Separator)
		node := root
		for _, segment := range segments[:len(segments)-1] {
			next, ok := node[segment].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[segment] = next
			}
			node = next
		}
		node[segments[len(segments)-1]] = plain(e.value)
	}
	return root
}

func plain(v Value) any {
	if v.Len() == 1 {
		return v.Index(0)
	}
	return v.Interfaces()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}
