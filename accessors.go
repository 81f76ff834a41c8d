package props

import (
	"errors"
	"fmt"
)

// Reader is the read-only view shared by *Set and *List. External
// serializers depend on it rather than on a concrete container.
type Reader interface {
	Value(name string) (Value, error)
}

// Get returns the value stored at name as T. When name holds an array the
// last element is returned.
//
//	exptime, err := props.Get[float64](header, "exptime")
func Get[T Scalar](r Reader, name string) (T, error) {
	var zero T
	a, err := typed[T](r, "get", name)
	if err != nil {
		return zero, err
	}
	return a.last(), nil
}

// GetOr behaves like Get but returns fallback when name is absent. A kind
// mismatch is still reported.
func GetOr[T Scalar](r Reader, name string, fallback T) (T, error) {
	v, err := Get[T](r, name)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	return v, err
}

// GetArray returns every value stored at name. A single value comes back
// as a one-element slice.
func GetArray[T Scalar](r Reader, name string) ([]T, error) {
	a, err := typed[T](r, "get", name)
	if err != nil {
		return nil, err
	}
	return a.all(), nil
}

func typed[T Scalar](r Reader, op, name string) (*array[T], error) {
	v, err := r.Value(name)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*array[T])
	if !ok {
		return nil, mismatch(op, name, v.Kind(), kindOf[T]())
	}
	return a, nil
}

func lastItem(r Reader, name string) (any, error) {
	v, err := r.Value(name)
	if err != nil {
		return nil, err
	}
	return v.Index(v.Len() - 1), nil
}

// GetAsBool returns a bool value.
func GetAsBool(r Reader, name string) (bool, error) {
	return Get[bool](r, name)
}

// GetAsInt widens bool, int8, int16, int32 and int values to int.
func GetAsInt(r Reader, name string) (int, error) {
	item, err := lastItem(r, name)
	if err != nil {
		return 0, err
	}
	switch v := item.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, widenError("getAsInt", name, item, KindInt)
}

// GetAsInt64 widens GetAsInt's kinds plus int64 and uint32 to int64.
func GetAsInt64(r Reader, name string) (int64, error) {
	item, err := lastItem(r, name)
	if err != nil {
		return 0, err
	}
	switch v := item.(type) {
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	}
	i, err := GetAsInt(r, name)
	if err != nil {
		return 0, widenError("getAsInt64", name, item, KindInt64)
	}
	return int64(i), nil
}

// GetAsFloat64 widens every numeric and bool kind to float64.
func GetAsFloat64(r Reader, name string) (float64, error) {
	item, err := lastItem(r, name)
	if err != nil {
		return 0, err
	}
	switch v := item.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case uint64:
		return float64(v), nil
	}
	i, err := GetAsInt64(r, name)
	if err != nil {
		return 0, widenError("getAsFloat64", name, item, KindFloat64)
	}
	return float64(i), nil
}

// GetAsString returns a string value.
func GetAsString(r Reader, name string) (string, error) {
	return Get[string](r, name)
}

func widenError(op, name string, item any, want Kind) error {
	return &PropertyError{
		Op:   op,
		Name: name,
		Err:  fmt.Errorf("%w: cannot convert %T to %s", ErrTypeMismatch, item, want),
	}
}
