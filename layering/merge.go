// Package layering resolves stacks of header lists into one effective list,
// the way a FITS extension inherits keywords from its primary header.
package layering

import (
	"fmt"

	props "github.com/goliatone/go-props"
)

// Merge composes lists ordered from strongest to weakest. Every name of a
// stronger list is kept as is; a weaker list only contributes names that no
// stronger list defines, either directly or through a leaf ancestor. The
// result keeps the strongest list's order and appends inherited names in
// their own list's order, comments included. Inputs are never modified.
func Merge(layers ...*props.List) (*props.List, error) {
	return mergeInto(props.NewList(), layers)
}

func mergeInto(out *props.List, layers []*props.List) (*props.List, error) {
	for i, layer := range layers {
		if layer == nil {
			continue
		}
		for name, value := range layer.All() {
			if shadowed(out, name) {
				continue
			}
			var opts []props.EntryOption
			if layer.HasComment(name) {
				comment, _ := layer.Comment(name)
				opts = append(opts, props.WithComment(comment))
			}
			if err := out.Set(name, value, opts...); err != nil {
				return nil, fmt.Errorf("layering: merge layer %d: %w", i, err)
			}
		}
	}
	return out, nil
}

// shadowed reports whether merged already answers for name, directly or
// through a leaf ancestor.
func shadowed(merged *props.List, name string) bool {
	if merged.Exists(name) {
		return true
	}
	for _, parent := range ancestors(name) {
		if merged.Exists(parent) && !merged.IsSet(parent) {
			return true
		}
	}
	return false
}

func ancestors(name string) []string {
	var out []string
	for i := 0; i < len(name); i++ {
		if name[i] == props.Separator[0] {
			out = append(out, name[:i])
		}
	}
	return out
}
