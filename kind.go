package props

import "fmt"

// Kind identifies the scalar type held by every element of a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindTime
)

var kindNames = map[Kind]string{
	KindBool:    "bool",
	KindInt:     "int",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindBytes:   "bytes",
	KindTime:    "time",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == KindInvalid {
		return nil, fmt.Errorf("props: cannot marshal invalid kind")
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	parsed := ParseKind(string(d))
	if parsed == KindInvalid {
		return fmt.Errorf("props: unrecognized kind %q", d)
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name back into a Kind. Returns KindInvalid for
// unrecognised names.
func ParseKind(name string) Kind {
	for k, s := range kindNames {
		if s == name {
			return k
		}
	}
	return KindInvalid
}

// Kinds lists every storable kind.
func Kinds() []Kind {
	return []Kind{
		KindBool,
		KindInt,
		KindInt8,
		KindInt16,
		KindInt32,
		KindInt64,
		KindUint32,
		KindUint64,
		KindFloat32,
		KindFloat64,
		KindString,
		KindBytes,
		KindTime,
	}
}

// IsNumeric reports whether values of k widen to float64.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64, KindUint32, KindUint64, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}
