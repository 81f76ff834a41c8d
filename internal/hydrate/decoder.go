// Package hydrate reads and writes header lists as JSON documents. Nested
// objects map to dotted names, arrays to multi-valued entries and an optional
// top-level "_comments" object to per-name comments. Key order is preserved.
package hydrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"time"

	props "github.com/goliatone/go-props"
)

// DefaultCommentsKey is the top-level key holding per-name comments.
const DefaultCommentsKey = "_comments"

// Context identifies the document being decoded.
type Context struct {
	Source string
	Label  string
}

// Field is one flattened entry read from a document.
type Field struct {
	Name       string
	Value      any
	Comment    string
	HasComment bool
}

// PreHook lets callers rename, drop or rewrite fields before they are stored.
type PreHook func(Context, []Field) ([]Field, error)

// PostHook lets callers adjust or validate the hydrated list.
type PostHook func(Context, *props.List) error

// CustomDecoder replaces the default JSON field reader when provided.
type CustomDecoder func(Context, io.Reader) ([]Field, error)

// DecoderOption configures a Decoder instance.
type DecoderOption func(*Decoder)

// Decoder converts JSON documents into header lists.
type Decoder struct {
	preHooks    []PreHook
	postHooks   []PostHook
	custom      CustomDecoder
	commentsKey string
	parseTimes  bool
	listOptions []props.Option
}

// WithPreHook applies hook to the decoded fields.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after the list is built.
func WithPostHook(hook PostHook) DecoderOption {
	return func(d *Decoder) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithCustomDecoder replaces the default JSON reader.
func WithCustomDecoder(decoder CustomDecoder) DecoderOption {
	return func(d *Decoder) {
		d.custom = decoder
	}
}

// WithCommentsKey changes the key comments are read from. An empty key
// treats every top-level key as data.
func WithCommentsKey(key string) DecoderOption {
	return func(d *Decoder) {
		d.commentsKey = key
	}
}

// WithTimes decodes RFC 3339 strings as time values.
func WithTimes() DecoderOption {
	return func(d *Decoder) {
		d.parseTimes = true
	}
}

// WithListOptions passes opts to the list built by Decode.
func WithListOptions(opts ...props.Option) DecoderOption {
	return func(d *Decoder) {
		d.listOptions = append(d.listOptions, opts...)
	}
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{commentsKey: DefaultCommentsKey}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode reads one JSON object from r into a new list. Repeated names are
// appended in document order.
func (d *Decoder) Decode(ctx Context, r io.Reader) (*props.List, error) {
	if r == nil {
		return nil, fmt.Errorf("hydrate: reader is nil for %q", ctx.Source)
	}

	var (
		fields []Field
		err    error
	)
	if d.custom != nil {
		fields, err = d.custom(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("hydrate: custom decoder for %q failed: %w", ctx.Source, err)
		}
	} else {
		fields, err = d.readFields(r)
		if err != nil {
			return nil, fmt.Errorf("hydrate: decode %q: %w", ctx.Source, err)
		}
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, fields)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre-hook for %q failed: %w", ctx.Source, err)
		}
		if next != nil {
			fields = next
		}
	}

	opts := make([]props.Option, 0, len(d.listOptions)+1)
	if ctx.Label != "" {
		opts = append(opts, props.WithLabel(ctx.Label))
	}
	list := props.NewList(append(opts, d.listOptions...)...)
	for _, field := range fields {
		var entryOpts []props.EntryOption
		if field.HasComment {
			entryOpts = append(entryOpts, props.WithComment(field.Comment))
		}
		if err := list.Add(field.Name, field.Value, entryOpts...); err != nil {
			return nil, fmt.Errorf("hydrate: store %q from %q: %w", field.Name, ctx.Source, err)
		}
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, list); err != nil {
			return nil, fmt.Errorf("hydrate: post-hook for %q failed: %w", ctx.Source, err)
		}
	}
	return list, nil
}

type reader struct {
	dec         *json.Decoder
	commentsKey string
	parseTimes  bool
	fields      []Field
	comments    map[string]string
	order       []string
}

func (d *Decoder) readFields(r io.Reader) ([]Field, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	rd := &reader{dec: dec, commentsKey: d.commentsKey, parseTimes: d.parseTimes, comments: map[string]string{}}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}
	if err := rd.object(""); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}

	for _, name := range rd.order {
		i := slices.IndexFunc(rd.fields, func(f Field) bool { return f.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("comment for unknown name %q", name)
		}
		rd.fields[i].Comment = rd.comments[name]
		rd.fields[i].HasComment = true
	}
	return rd.fields, nil
}

func (rd *reader) object(prefix string) error {
	for rd.dec.More() {
		tok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		if prefix == "" && rd.commentsKey != "" && key == rd.commentsKey {
			if err := rd.commentBlock(); err != nil {
				return err
			}
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + props.Separator + key
		}
		if err := rd.value(name); err != nil {
			return err
		}
	}
	_, err := rd.dec.Token()
	return err
}

func (rd *reader) value(name string) error {
	tok, err := rd.dec.Token()
	if err != nil {
		return err
	}
	switch delim := tok.(type) {
	case json.Delim:
		if delim == '{' {
			return rd.object(name)
		}
		items, err := rd.array(name)
		if err != nil {
			return err
		}
		rd.fields = append(rd.fields, Field{Name: name, Value: items})
		return nil
	default:
		item, err := rd.scalar(name, tok)
		if err != nil {
			return err
		}
		rd.fields = append(rd.fields, Field{Name: name, Value: item})
		return nil
	}
}

func (rd *reader) array(name string) (any, error) {
	var items []any
	for rd.dec.More() {
		tok, err := rd.dec.Token()
		if err != nil {
			return nil, err
		}
		if _, ok := tok.(json.Delim); ok {
			return nil, fmt.Errorf("%q: arrays may only hold scalars", name)
		}
		item, err := rd.scalar(name, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := rd.dec.Token(); err != nil {
		return nil, err
	}
	return homogeneous(name, items)
}

func (rd *reader) scalar(name string, tok json.Token) (any, error) {
	switch v := tok.(type) {
	case bool:
		return v, nil
	case string:
		if rd.parseTimes {
			if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return ts, nil
			}
		}
		return v, nil
	case json.Number:
		return number(v)
	case nil:
		return nil, fmt.Errorf("%q: null values are not supported", name)
	}
	return nil, fmt.Errorf("%q: unexpected token %v", name, tok)
}

func (rd *reader) commentBlock() error {
	tok, err := rd.dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%q must be an object of strings", rd.commentsKey)
	}
	for rd.dec.More() {
		keyTok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		valueTok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		comment, ok := valueTok.(string)
		if !ok {
			return fmt.Errorf("%q: comment for %q must be a string", rd.commentsKey, keyTok)
		}
		name := keyTok.(string)
		if _, seen := rd.comments[name]; !seen {
			rd.order = append(rd.order, name)
		}
		rd.comments[name] = comment
	}
	_, err = rd.dec.Token()
	return err
}

// number keeps integral literals as int, falling back to uint64 and then
// float64 when they do not fit.
func number(n json.Number) (any, error) {
	raw := n.String()
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		return i, nil
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return f, nil
}

// homogeneous converts decoded array items to a typed slice. Integers mixed
// with floats are widened to float64.
func homogeneous(name string, items []any) (any, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%q: empty arrays are not supported", name)
	}
	switch items[0].(type) {
	case bool:
		return collect[bool](name, items)
	case string:
		return collect[string](name, items)
	case time.Time:
		return collect[time.Time](name, items)
	}

	floats := make([]float64, len(items))
	ints := make([]int, len(items))
	integral := true
	for i, item := range items {
		switch v := item.(type) {
		case int:
			ints[i] = v
			floats[i] = float64(v)
		case int64:
			integral = false
			floats[i] = float64(v)
		case uint64:
			integral = false
			floats[i] = float64(v)
		case float64:
			integral = false
			floats[i] = v
		default:
			return nil, fmt.Errorf("%q: mixed element types in array", name)
		}
	}
	if integral {
		return ints, nil
	}
	return floats, nil
}

func collect[T bool | string | time.Time](name string, items []any) ([]T, error) {
	out := make([]T, len(items))
	for i, item := range items {
		v, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("%q: mixed element types in array", name)
		}
		out[i] = v
	}
	return out, nil
}
