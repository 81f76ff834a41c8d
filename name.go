package props

import (
	"slices"
	"strings"
)

// Separator joins the segments of a hierarchical name.
const Separator = "."

func validName(name string) bool {
	if name == "" {
		return false
	}
	return !slices.Contains(strings.Split(name, Separator), "")
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + Separator + segment
}

// ancestors returns the proper prefixes of name, shortest first:
// "a.b.c" yields "a", "a.b".
func ancestors(name string) []string {
	var out []string
	for i := 0; i < len(name); i++ {
		if name[i] == Separator[0] {
			out = append(out, name[:i])
		}
	}
	return out
}

func topLevel(name string) string {
	head, _, _ := strings.Cut(name, Separator)
	return head
}

func isBeneath(key, name string) bool {
	return len(key) > len(name)+1 && strings.HasPrefix(key, name) && key[len(name)] == Separator[0]
}

func relative(key, name string) string {
	return key[len(name)+1:]
}
