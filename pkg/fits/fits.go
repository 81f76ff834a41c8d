// Package fits reads and writes header lists as FITS header cards: 80-byte
// ASCII records terminated by an END card and padded to 2880-byte blocks.
//
// Names that are not valid eight-character keywords (lower case, dotted or
// longer names) use the HIERARCH convention. Multi-valued entries are
// written as one card per element with the comment on the first card, and
// repeated keywords accumulate again when decoded.
package fits

import (
	"errors"

	props "github.com/goliatone/go-props"
)

const (
	// CardSize is the fixed width of a header card.
	CardSize = 80
	// BlockSize is the size a header is padded to.
	BlockSize = 2880

	hierarch = "HIERARCH"
	endCard  = "END"
)

var (
	ErrUnsupportedKind = errors.New("fits: unsupported kind")
	ErrCardTooLong     = errors.New("fits: card exceeds 80 columns")
	ErrInvalidCard     = errors.New("fits: invalid card")
	ErrMissingEnd      = errors.New("fits: missing END card")
)

// Header is the read-only view Encode needs. *props.List satisfies it.
type Header interface {
	OrderedNames() []string
	Value(name string) (props.Value, error)
	Comment(name string) (string, error)
}

var commentary = map[string]bool{"COMMENT": true, "HISTORY": true}

func standardKeyword(name string) bool {
	if name == "" || len(name) > 8 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
