package props

import (
	"strings"
)

const nestIndent = ".."

// String returns Format(false, "").
func (s *Set) String() string {
	return s.Format(false, "")
}

// Format renders the set for diagnostics, one name per line in sorted
// order. Property sets open a "{" block whose lines are indented by "..";
// with topLevelOnly they are collapsed to "{ ... }". The output is not
// meant to be parsed.
func (s *Set) Format(topLevelOnly bool, indent string) string {
	var b strings.Builder
	s.format(&b, topLevelOnly, indent)
	return b.String()
}

func (s *Set) format(b *strings.Builder, topLevelOnly bool, indent string) {
	for _, name := range s.Names(true) {
		if v, ok := s.values[name]; ok {
			writeLine(b, indent, name, v.String(), "", false)
			continue
		}
		if topLevelOnly {
			writeLine(b, indent, name, "{ ... }", "", false)
			continue
		}
		sub, err := s.Sub(name)
		if err != nil {
			continue
		}
		writeLine(b, indent, name, "{", "", false)
		sub.format(b, false, indent+nestIndent)
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

// String returns Format(false, "").
func (l *List) String() string {
	return l.Format(false, "")
}

// Format renders the list for diagnostics in list order, each comment
// trailing its line after "//". With topLevelOnly the names of a property
// set collapse into a single "{ ... }" line at the first one's position.
func (l *List) Format(topLevelOnly bool, indent string) string {
	var b strings.Builder
	collapsed := map[string]bool{}
	for _, name := range l.order {
		if topLevelOnly && strings.Contains(name, Separator) {
			head := topLevel(name)
			if collapsed[head] {
				continue
			}
			collapsed[head] = true
			writeLine(&b, indent, head, "{ ... }", "", false)
			continue
		}
		comment, ok := l.comments[name]
		writeLine(&b, indent, name, l.set.values[name].String(), comment, ok)
	}
	return b.String()
}

func writeLine(b *strings.Builder, indent, name, value, comment string, hasComment bool) {
	b.WriteString(indent)
	b.WriteString(name)
	b.WriteString(" = ")
	b.WriteString(value)
	if hasComment {
		b.WriteString(" // ")
		b.WriteString(comment)
	}
	b.WriteByte('\n')
}
