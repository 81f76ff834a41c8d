package props

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-props/pkg/activity"
)

// List is a Set that remembers the order in which names were inserted and
// carries an optional comment per name. It is the header representation:
// every name held by the base store appears exactly once in the order, and
// comments exist only for ordered names. The zero value is an empty list.
type List struct {
	set      Set
	order    []string
	comments map[string]string
	cfg      listConfig
}

// NewList returns an empty List configured by opts.
func NewList(opts ...Option) *List {
	return &List{
		set:      Set{values: map[string]Value{}},
		comments: map[string]string{},
		cfg:      applyOptions(opts),
	}
}

// EntryOption adjusts a single Set or Add call.
type EntryOption func(*entryConfig)

type entryConfig struct {
	comment    string
	hasComment bool
	moveToEnd  bool
}

// WithComment attaches comment to the written name. An explicit comment
// replaces any stored one; omitting it leaves the stored comment alone.
func WithComment(comment string) EntryOption {
	return func(cfg *entryConfig) {
		cfg.comment = comment
		cfg.hasComment = true
	}
}

// WithMoveToEnd moves an existing name to the end of the order instead of
// keeping its position.
func WithMoveToEnd() EntryOption {
	return func(cfg *entryConfig) {
		cfg.moveToEnd = true
	}
}

func applyEntryOptions(opts []EntryOption) entryConfig {
	var cfg entryConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Set replaces the value stored at name. A new name is appended to the
// order; an existing name keeps its position. When value is a *Set or *List
// its entries are flattened beneath name in their own order, each keeping
// its comment. WithComment is ignored for such a value. A nil *Set or *List
// is rejected with ErrInvalidParameter.
func (l *List) Set(name string, value any, opts ...EntryOption) error {
	eo := applyEntryOptions(opts)
	p, err := newPayload("set", name, value)
	if err != nil {
		return err
	}
	ch, err := l.set.set("set", name, p)
	if err != nil {
		return err
	}
	l.sync(ch, eo.moveToEnd)
	l.applyComments(name, p, eo)
	l.emit(activity.BuildEntrySetEvent, name, nil)
	return nil
}

// Add appends value to the array stored at name, creating the entry when
// name is new. A supplied comment replaces the stored one.
func (l *List) Add(name string, value any, opts ...EntryOption) error {
	eo := applyEntryOptions(opts)
	p, err := newPayload("add", name, value)
	if err != nil {
		return err
	}
	if !validName(name) {
		return invalid("add", name, "malformed name")
	}
	ch, err := l.set.add("add", p.targets(name))
	if err != nil {
		return err
	}
	l.sync(ch, eo.moveToEnd)
	l.applyComments(name, p, eo)
	l.emit(activity.BuildEntryAddedEvent, name, nil)
	return nil
}

// Remove deletes name, or every name beneath it, from values, order and
// comments. Removing an absent name is a no-op.
func (l *List) Remove(name string) {
	removed := l.set.remove(name)
	if len(removed) == 0 {
		return
	}
	for _, key := range removed {
		l.dropKey(key)
	}
	l.emit(activity.BuildEntryRemovedEvent, name, map[string]any{"removed": removed})
}

// Combine appends every entry of src using Add semantics: names new to l
// are appended in src's order and repeated names accumulate values. Comments
// carried by an ordered source replace the stored ones. Nothing changes when
// any entry conflicts.
func (l *List) Combine(src Source) error {
	entries, err := entriesOf("combine", "", src)
	if err != nil {
		return err
	}
	ch, err := l.set.add("combine", entries)
	if err != nil {
		return err
	}
	l.sync(ch, false)
	for _, e := range entries {
		if e.hasComment {
			l.commentOrderFix(e.name, e.comment)
		}
	}
	l.emit(activity.BuildListCombinedEvent, "", map[string]any{"entries": len(entries)})
	return nil
}

// Copy stores the value found at name in src under dest. Only values are
// copied; dest keeps its position and comment when it already exists.
func (l *List) Copy(dest string, src Source, name string) error {
	p, err := extract(src, name)
	if err != nil {
		return err
	}
	ch, err := l.set.set("copy", dest, p)
	if err != nil {
		return err
	}
	l.sync(ch, false)
	l.emit(activity.BuildEntryCopiedEvent, dest, map[string]any{"source": name})
	return nil
}

// DeepCopy returns a List sharing no mutable state with l. Configuration,
// hooks included, is carried over.
func (l *List) DeepCopy() *List {
	out := &List{
		set:      *l.set.DeepCopy(),
		order:    slices.Clone(l.order),
		comments: maps.Clone(l.comments),
		cfg:      l.cfg,
	}
	if out.comments == nil {
		out.comments = map[string]string{}
	}
	return out
}

// Comment returns the comment recorded for name, or "" when there is none.
// It fails with ErrNotFound when name is not an ordered name.
func (l *List) Comment(name string) (string, error) {
	if !slices.Contains(l.order, name) {
		return "", notFound("comment", name)
	}
	return l.comments[name], nil
}

// HasComment reports whether a comment is recorded for name.
func (l *List) HasComment(name string) bool {
	_, ok := l.comments[name]
	return ok
}

// OrderedNames returns a copy of the names in insertion order.
func (l *List) OrderedNames() []string {
	return slices.Clone(l.order)
}

// Keys yields the ordered names. The sequence reads the list at each step,
// so it must not be consumed while the list is being mutated.
func (l *List) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(l.order); i++ {
			if !yield(l.order[i]) {
				return
			}
		}
	}
}

// All yields each ordered name with its value.
func (l *List) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i := 0; i < len(l.order); i++ {
			name := l.order[i]
			v, ok := l.set.values[name]
			if !ok {
				continue
			}
			if !yield(name, v) {
				return
			}
		}
	}
}

// Label returns the label configured with WithLabel.
func (l *List) Label() string {
	return l.cfg.label
}

func (l *List) Value(name string) (Value, error)    { return l.set.Value(name) }
func (l *List) Exists(name string) bool             { return l.set.Exists(name) }
func (l *List) IsArray(name string) bool            { return l.set.IsArray(name) }
func (l *List) IsSet(name string) bool              { return l.set.IsSet(name) }
func (l *List) TypeOf(name string) (Kind, error)    { return l.set.TypeOf(name) }
func (l *List) ValueCount(name string) (int, error) { return l.set.ValueCount(name) }
func (l *List) Len() int                            { return len(l.order) }

// ParamNames returns the names holding values in list order. With
// topLevelOnly names beneath a property set are skipped.
func (l *List) ParamNames(topLevelOnly bool) []string {
	var out []string
	for _, name := range l.order {
		if topLevelOnly && strings.Contains(name, Separator) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ToMap renders the list as nested maps. It is the snapshot expressions are
// evaluated against.
func (l *List) ToMap() map[string]any {
	return toMap(l.sourceEntries())
}

// Base returns a detached copy of the unordered base store.
func (l *List) Base() *Set {
	return l.set.DeepCopy()
}

func (l *List) sourceEntries() []entry {
	if l == nil {
		return nil
	}
	out := make([]entry, 0, len(l.order))
	for _, name := range l.order {
		e := entry{name: name, value: l.set.values[name]}
		e.comment, e.hasComment = l.comments[name]
		out = append(out, e)
	}
	return out
}

// applyComments installs the comments a Set or Add call carries: the
// explicit one for a single value, or the children's for a flattened source.
func (l *List) applyComments(name string, p payload, eo entryConfig) {
	if p.nested {
		for _, t := range p.targets(name) {
			if t.hasComment {
				l.commentOrderFix(t.name, t.comment)
			}
		}
		return
	}
	if eo.hasComment {
		l.commentOrderFix(name, eo.comment)
	}
}

// sync brings the order in line with a base-layer change: names removed
// and not rewritten leave the order, written names are recorded.
func (l *List) sync(ch change, moveToEnd bool) {
	if len(ch.removed) > 0 {
		written := make(map[string]struct{}, len(ch.written))
		for _, name := range ch.written {
			written[name] = struct{}{}
		}
		for _, name := range ch.removed {
			if _, ok := written[name]; !ok {
				l.dropKey(name)
			}
		}
	}
	for _, name := range ch.written {
		if moveToEnd {
			l.moveToEnd(name)
			continue
		}
		l.recordKey(name)
	}
}

func (l *List) recordKey(name string) {
	if !slices.Contains(l.order, name) {
		l.order = append(l.order, name)
	}
}

func (l *List) moveToEnd(name string) {
	if i := slices.Index(l.order, name); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	l.order = append(l.order, name)
}

func (l *List) dropKey(name string) {
	if i := slices.Index(l.order, name); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	delete(l.comments, name)
}

// commentOrderFix records comment for name only when name is ordered.
func (l *List) commentOrderFix(name, comment string) {
	if !slices.Contains(l.order, name) {
		return
	}
	if l.comments == nil {
		l.comments = map[string]string{}
	}
	l.comments[name] = comment
}
