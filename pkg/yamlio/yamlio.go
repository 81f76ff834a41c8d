// Package yamlio stores header lists as a YAML sequence of cards. Each card
// carries the name, kind name, value (a scalar or a sequence) and optional
// comment, so kinds and order survive a round trip.
package yamlio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-yaml"
	props "github.com/goliatone/go-props"
)

var ErrUnknownKind = errors.New("yamlio: unknown kind")

// Card is the YAML form of one entry.
type Card struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"`
	Value   any     `yaml:"value"`
	Comment *string `yaml:"comment,omitempty"`
}

// Header is the read side of a list needed for encoding.
type Header interface {
	OrderedNames() []string
	Value(name string) (props.Value, error)
	Comment(name string) (string, error)
	HasComment(name string) bool
}

// Cards converts h into cards in list order.
func Cards(h Header) ([]Card, error) {
	names := h.OrderedNames()
	cards := make([]Card, 0, len(names))
	for _, name := range names {
		value, err := h.Value(name)
		if err != nil {
			return nil, fmt.Errorf("yamlio: encode %q: %w", name, err)
		}
		items := make([]any, value.Len())
		for i := range items {
			items[i] = plain(value.Index(i))
		}
		card := Card{Name: name, Kind: value.Kind().String(), Value: items}
		if !value.IsArray() {
			card.Value = items[0]
		}
		if h.HasComment(name) {
			comment, _ := h.Comment(name)
			card.Comment = &comment
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Encode writes h to w as YAML cards.
func Encode(w io.Writer, h Header) error {
	cards, err := Cards(h)
	if err != nil {
		return err
	}
	out, err := yaml.MarshalWithOptions(cards, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("yamlio: marshal: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// Decode reads YAML cards from r into a new list. Cards sharing a name are
// appended in order.
func Decode(r io.Reader, opts ...props.Option) (*props.List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("yamlio: read: %w", err)
	}
	var cards []Card
	if err := yaml.UnmarshalWithOptions(data, &cards, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("yamlio: unmarshal: %w", err)
	}
	return FromCards(cards, opts...)
}

// FromCards builds a list from cards, converting each value to its kind.
func FromCards(cards []Card, opts ...props.Option) (*props.List, error) {
	list := props.NewList(opts...)
	for i, card := range cards {
		value, err := coerce(card)
		if err != nil {
			return nil, fmt.Errorf("yamlio: card %d %q: %w", i, card.Name, err)
		}
		var entryOpts []props.EntryOption
		if card.Comment != nil {
			entryOpts = append(entryOpts, props.WithComment(*card.Comment))
		}
		if err := list.Add(card.Name, value, entryOpts...); err != nil {
			return nil, fmt.Errorf("yamlio: card %d: %w", i, err)
		}
	}
	return list, nil
}

func plain(item any) any {
	switch v := item.(type) {
	case float32:
		return float64(v)
	case []byte:
		return base64.StdEncoding.EncodeToString(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	}
	return item
}

func coerce(card Card) (any, error) {
	items, ok := card.Value.([]any)
	if !ok {
		items = []any{card.Value}
	}
	switch props.ParseKind(card.Kind) {
	case props.KindBool:
		return convert(items, func(raw any) (bool, error) {
			b, ok := raw.(bool)
			if !ok {
				return false, fmt.Errorf("expected bool, got %T", raw)
			}
			return b, nil
		})
	case props.KindInt:
		return convert(items, ranged[int](math.MinInt, math.MaxInt))
	case props.KindInt8:
		return convert(items, ranged[int8](math.MinInt8, math.MaxInt8))
	case props.KindInt16:
		return convert(items, ranged[int16](math.MinInt16, math.MaxInt16))
	case props.KindInt32:
		return convert(items, ranged[int32](math.MinInt32, math.MaxInt32))
	case props.KindInt64:
		return convert(items, ranged[int64](math.MinInt64, math.MaxInt64))
	case props.KindUint32:
		return convert(items, ranged[uint32](0, math.MaxUint32))
	case props.KindUint64:
		return convert(items, toUint64)
	case props.KindFloat32:
		return convert(items, func(raw any) (float32, error) {
			f, err := toFloat64(raw)
			return float32(f), err
		})
	case props.KindFloat64:
		return convert(items, toFloat64)
	case props.KindString:
		return convert(items, func(raw any) (string, error) {
			if s, ok := raw.(string); ok {
				return s, nil
			}
			return fmt.Sprint(raw), nil
		})
	case props.KindBytes:
		return convert(items, func(raw any) ([]byte, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("expected base64 text, got %T", raw)
			}
			return base64.StdEncoding.DecodeString(s)
		})
	case props.KindTime:
		return convert(items, func(raw any) (time.Time, error) {
			switch v := raw.(type) {
			case time.Time:
				return v, nil
			case string:
				return time.Parse(time.RFC3339Nano, v)
			}
			return time.Time{}, fmt.Errorf("expected timestamp, got %T", raw)
		})
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, card.Kind)
}

func convert[T props.Scalar](items []any, fn func(any) (T, error)) ([]T, error) {
	out := make([]T, len(items))
	for i, raw := range items {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func ranged[T int | int8 | int16 | int32 | int64 | uint32](lo, hi int64) func(any) (T, error) {
	return func(raw any) (T, error) {
		i, err := toInt64(raw)
		if err != nil {
			return 0, err
		}
		if i < lo || i > hi {
			return 0, fmt.Errorf("%d out of range", i)
		}
		return T(i), nil
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d out of range", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", raw)
}

func toUint64(raw any) (uint64, error) {
	if v, ok := raw.(uint64); ok {
		return v, nil
	}
	i, err := toInt64(raw)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("%d out of range", i)
	}
	return uint64(i), nil
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected number, got %T", raw)
}
