// Package props stores ordered, commented header metadata: dotted-path keys
// mapped to homogeneous arrays of scalar values.
package props

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Scalar is the closed set of Go types a property may hold. A []byte is a
// single opaque blob, never an array of bytes.
type Scalar interface {
	bool | int | int8 | int16 | int32 | int64 | uint32 | uint64 |
		float32 | float64 | string | []byte | time.Time
}

// Value is the payload stored under one key: one or more elements of a
// single Kind. Concrete values are created by ValueOf and by the containers;
// they are never modified after creation.
type Value interface {
	Kind() Kind
	Len() int
	// IsArray reports whether the value holds more than one element.
	IsArray() bool
	// Index returns element i as its Go scalar type.
	Index(i int) any
	Interfaces() []any
	String() string

	clone() Value
	concat(other Value) (Value, bool)
	element(i int) string
}

type array[T Scalar] struct {
	items []T
}

func newArray[T Scalar](items []T) *array[T] {
	return &array[T]{items: cloneItems(items)}
}

func (a *array[T]) Kind() Kind    { return kindOf[T]() }
func (a *array[T]) Len() int      { return len(a.items) }
func (a *array[T]) IsArray() bool { return len(a.items) > 1 }

func (a *array[T]) Index(i int) any {
	return any(cloneItem(a.items[i]))
}

func (a *array[T]) Interfaces() []any {
	out := make([]any, len(a.items))
	for i := range a.items {
		out[i] = a.Index(i)
	}
	return out
}

func (a *array[T]) String() string {
	if len(a.items) == 1 {
		return a.element(0)
	}
	parts := make([]string, len(a.items))
	for i := range a.items {
		parts[i] = a.element(i)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

func (a *array[T]) clone() Value {
	return newArray(a.items)
}

// concat returns a new value holding a's elements followed by other's. The
// receiver is left untouched so values handed out earlier stay stable.
func (a *array[T]) concat(other Value) (Value, bool) {
	o, ok := other.(*array[T])
	if !ok {
		return nil, false
	}
	return &array[T]{items: slices.Concat(a.items, cloneItems(o.items))}, true
}

func (a *array[T]) element(i int) string {
	return formatItem(any(a.items[i]))
}

func (a *array[T]) last() T {
	return cloneItem(a.items[len(a.items)-1])
}

func (a *array[T]) all() []T {
	return cloneItems(a.items)
}

func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int:
		return KindInt
	case int8:
		return KindInt8
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case uint32:
		return KindUint32
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case string:
		return KindString
	case []byte:
		return KindBytes
	case time.Time:
		return KindTime
	}
	return KindInvalid
}

func cloneItem[T Scalar](item T) T {
	if b, ok := any(item).([]byte); ok {
		return any(bytes.Clone(b)).(T)
	}
	return item
}

func cloneItems[T Scalar](items []T) []T {
	out := make([]T, len(items))
	for i := range items {
		out[i] = cloneItem(items[i])
	}
	return out
}

func formatItem(item any) string {
	switch v := item.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(v))
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// ValueOf converts a supported scalar, a slice of one, or an existing Value
// into a detached Value. Unsupported types fail with ErrTypeMismatch and
// empty slices with ErrInvalidParameter.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x.clone(), nil
	case bool:
		return newArray([]bool{x}), nil
	case []bool:
		return sliceValue(x)
	case int:
		return newArray([]int{x}), nil
	case []int:
		return sliceValue(x)
	case int8:
		return newArray([]int8{x}), nil
	case []int8:
		return sliceValue(x)
	case int16:
		return newArray([]int16{x}), nil
	case []int16:
		return sliceValue(x)
	case int32:
		return newArray([]int32{x}), nil
	case []int32:
		return sliceValue(x)
	case int64:
		return newArray([]int64{x}), nil
	case []int64:
		return sliceValue(x)
	case uint32:
		return newArray([]uint32{x}), nil
	case []uint32:
		return sliceValue(x)
	case uint64:
		return newArray([]uint64{x}), nil
	case []uint64:
		return sliceValue(x)
	case float32:
		return newArray([]float32{x}), nil
	case []float32:
		return sliceValue(x)
	case float64:
		return newArray([]float64{x}), nil
	case []float64:
		return sliceValue(x)
	case string:
		return newArray([]string{x}), nil
	case []string:
		return sliceValue(x)
	case []byte:
		return newArray([][]byte{x}), nil
	case [][]byte:
		return sliceValue(x)
	case time.Time:
		return newArray([]time.Time{x}), nil
	case []time.Time:
		return sliceValue(x)
	}
	return nil, fmt.Errorf("%w: unsupported type %T", ErrTypeMismatch, v)
}

func sliceValue[T Scalar](items []T) (Value, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty %s array", ErrInvalidParameter, kindOf[T]())
	}
	return newArray(items), nil
}
