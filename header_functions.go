package props

import (
	"fmt"
	"math"
	"time"
)

// mjdEpoch is 1858-11-17T00:00:00Z, day zero of the Modified Julian Date.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

var headerFunctions = map[string]Function{
	"mjd":     mjd,
	"firstof": func(args ...any) (any, error) { return element("firstof", args, 0) },
	"lastof":  func(args ...any) (any, error) { return element("lastof", args, -1) },
	"deg2rad": unary("deg2rad", func(x float64) float64 { return x * math.Pi / 180 }),
	"rad2deg": unary("rad2deg", func(x float64) float64 { return x * 180 / math.Pi }),
}

func mjd(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, arity("mjd", 1, len(args))
	}
	var t time.Time
	switch v := args[0].(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := parseHeaderTime(v)
		if err != nil {
			return nil, &PropertyError{Op: "mjd", Name: v, Err: fmt.Errorf("%w: %v", ErrInvalidParameter, err)}
		}
		t = parsed
	default:
		return nil, &PropertyError{Op: "mjd", Err: fmt.Errorf("%w: want time or string, got %T", ErrTypeMismatch, args[0])}
	}
	return t.Sub(mjdEpoch).Hours() / 24, nil
}

// parseHeaderTime accepts RFC 3339 and the zone-less FITS DATE form.
func parseHeaderTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func element(op string, args []any, index int) (any, error) {
	if len(args) != 1 {
		return nil, arity(op, 1, len(args))
	}
	items, ok := args[0].([]any)
	if !ok {
		return args[0], nil
	}
	if len(items) == 0 {
		return nil, &PropertyError{Op: op, Err: fmt.Errorf("%w: empty array", ErrInvalidParameter)}
	}
	if index < 0 {
		index += len(items)
	}
	return items[index], nil
}

func unary(op string, fn func(float64) float64) Function {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, arity(op, 1, len(args))
		}
		x, err := toFloat(op, args[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func toFloat(op string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, &PropertyError{Op: op, Err: fmt.Errorf("%w: want number, got %T", ErrTypeMismatch, v)}
}

func arity(op string, want, got int) error {
	return &PropertyError{Op: op, Err: fmt.Errorf("%w: want %d argument(s), got %d", ErrInvalidParameter, want, got)}
}
